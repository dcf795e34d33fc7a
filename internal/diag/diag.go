// Package diag provides the diagnostic taxonomy shared by every compiler pass.
//
// Diagnostics are accumulated on a Log, never thrown as Go errors, so that a pass
// can surface every independent failure it finds in one sweep instead of stopping
// at the first one (spec.md §7).
package diag

import "fmt"

// Code is a stable diagnostic code, grouped by phase the way PAR###/TC###/RT###
// are grouped in the teacher's error registry.
type Code string

const (
	// Semantic pass (C1)
	UnresolvedSymbol Code = "SEM001"
	UnresolvedType   Code = "SEM002"
	PackageNotFound  Code = "SEM003"
	FieldAccessNoType Code = "SEM004"

	// Type checker (C2)
	CallNonFunction       Code = "TYP001"
	FunctionParamMismatch Code = "TYP002"
	FunctionReturnMismatch Code = "TYP003"
	BinopMismatch         Code = "TYP004"
	NotLvalue             Code = "TYP005"
	AssignConst           Code = "TYP006"

	// Catch-all, carries a static message and position only.
	Literal Code = "TYP999"

	// Runtime loader (C6)
	ImportNotFound     Code = "RUN001"
	ModuleParseFailed  Code = "RUN002"
	LibraryLoadFailed  Code = "RUN003"
	LibrarySymbolMissing Code = "RUN004"
	Trap               Code = "RUN005"
)

// phaseOf mirrors the teacher's ErrorRegistry / IsXError predicates, keyed by the
// code's family prefix instead of a lookup table per code.
func phaseOf(c Code) string {
	switch {
	case len(c) >= 3 && c[:3] == "SEM":
		return "resolve"
	case len(c) >= 3 && c[:3] == "TYP":
		return "typecheck"
	case len(c) >= 3 && c[:3] == "RUN":
		return "runtime"
	default:
		return "unknown"
	}
}

// Pos is a source position. The core never constructs these itself (lexing and
// parsing are external collaborators) but carries them on every AST node.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Diagnostic is a single structured diagnostic: a position, a code, a rendered
// message, and an optional typed payload for programmatic consumers.
type Diagnostic struct {
	Pos     Pos
	Code    Code
	Message string
	Payload interface{}
}

func (d Diagnostic) Phase() string { return phaseOf(d.Code) }

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// Log accumulates diagnostics across a phase. It is never used concurrently —
// exactly one pass mutates it at a time (spec.md §5).
type Log struct {
	diags []Diagnostic
}

// NewLog creates an empty diagnostic log.
func NewLog() *Log { return &Log{} }

// Add records a diagnostic and continues; it never panics or aborts the pass.
func (l *Log) Add(pos Pos, code Code, format string, args ...interface{}) {
	l.diags = append(l.diags, Diagnostic{
		Pos:     pos,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// AddPayload records a diagnostic carrying a typed payload for tooling.
func (l *Log) AddPayload(pos Pos, code Code, payload interface{}, format string, args ...interface{}) {
	l.diags = append(l.diags, Diagnostic{
		Pos:     pos,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Payload: payload,
	})
}

// HasErrors reports whether any diagnostic has been recorded. The pass driver
// checks this after each phase boundary to decide whether to continue.
func (l *Log) HasErrors() bool { return len(l.diags) > 0 }

// All returns every diagnostic recorded so far, in recording order.
func (l *Log) All() []Diagnostic { return l.diags }

// Count returns the number of diagnostics recorded.
func (l *Log) Count() int { return len(l.diags) }
