package loader

import (
	"fmt"
)

// Error codes reported by the loader.
const (
	ErrCodeNotFound    = "E005" // Input file not found
	ErrCodeParse       = "E004" // Document does not parse
	ErrCodeBuild       = "E006" // CUE evaluation failed
	ErrCodeFormat      = "E008" // Unsupported file extension
	ErrCodeShape       = "E101" // Document structure is wrong
	ErrCodeTypeForm    = "E102" // Unknown or malformed type form
	ErrCodeField       = "E103" // Malformed record or variant field
	ErrCodeMode        = "E104" // Unknown function mode
	ErrCodeDuplicate   = "E105" // Duplicate field label or method name
	ErrCodeInvalidDocs = "E106" // Malformed documentation block
	ErrCodeName        = "E107" // Declaration name is not an identifier
)

// Position locates a node in its source document.
type Position struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the position carries a line.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// LoadError is a positioned document error.
type LoadError struct {
	Code    string
	Message string
	Pos     Position
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func errorf(code string, pos Position, format string, args ...any) *LoadError {
	return &LoadError{Code: code, Message: fmt.Sprintf(format, args...), Pos: pos}
}
