// Command lucidrun loads a linked Lucid module and executes it on the WASM
// engine, optionally dropping into an interactive inspector if the run
// traps. A yaml lock file given with -lock is read and parsed, and a bad one
// stops the run, but its library entries are not applied to library loading.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/wasmhost"
)

// lockFile mirrors the teacher's own lock-file shape: a flat map from a
// declared foreign-block library name to a concrete shared-object path.
// main only checks that the file parses; the map is not used afterwards.
type lockFile struct {
	Libraries map[string]string `yaml:"libraries"`
}

func main() {
	var (
		lockPath = flag.String("lock", "", "path to a lucid.lock.yaml to validate (library entries are not applied)")
		inspect  = flag.Bool("inspect", false, "drop into an interactive inspector on trap")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: lucidrun [-lock path] [-inspect] <module.wasm>")
		os.Exit(2)
	}

	if *lockPath != "" {
		if _, err := loadLockFile(*lockPath); err != nil {
			fmt.Fprintf(os.Stderr, "lucidrun: %v\n", err)
			os.Exit(1)
		}
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "lucidrun: %v\n", err)
		os.Exit(1)
	}

	log := diag.NewLog()
	ctx := context.Background()
	cfg := wasmhost.Config{MemoryPages: 16, EnableSIMD: true, EnableThreads: true, EnableBulkMemory: true}

	if err := wasmhost.Run(ctx, data, cfg, nil, log); err != nil {
		diag.NewPrinter(os.Stderr).Print(log)
		if !log.HasErrors() {
			fmt.Fprintf(os.Stderr, "lucidrun: %v\n", err)
		}
		if *inspect {
			runInspector(log)
		}
		os.Exit(1)
	}
}

func loadLockFile(path string) (*lockFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lock file: %w", err)
	}
	var lf lockFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing lock file: %w", err)
	}
	return &lf, nil
}

// runInspector opens a minimal post-trap REPL: "diag" re-prints the
// accumulated diagnostics, anything else is echoed back so the exercise of
// wiring liner is visible without inventing a full debugger command set.
func runInspector(log *diag.Log) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("lucidrun> ")
		if err != nil {
			return
		}
		line.AppendHistory(input)
		switch input {
		case "quit", "exit":
			return
		case "diag":
			diag.NewPrinter(os.Stdout).Print(log)
		default:
			fmt.Println("unknown command:", input)
		}
	}
}
