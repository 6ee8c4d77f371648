package cli

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/roach88/bindgen/internal/analysis"
	"github.com/roach88/bindgen/internal/bindgen"
	"github.com/roach88/bindgen/internal/loader"
	"github.com/roach88/bindgen/internal/store"
)

// Error code constants - unified across all CLI commands. Loader codes
// (E004-E006, E008, E101-E107) pass through unchanged.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Scenario directory scan error
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeConfig      = "E009" // Configuration error
	ErrCodeCache       = "E010" // Cache error
	ErrCodeStale       = "E011" // Generated files are out of date
	ErrCodeUnresolved  = "E201" // Unresolved type reference
	ErrCodeActorShape  = "E202" // Unsupported actor shape
	ErrCodeTestsFailed = "E301" // One or more scenarios failed
)

// classify maps an error to its CLI code and exit code.
func classify(err error) (CLIError, int) {
	ce := CLIError{Code: ErrCodeGeneric, Message: err.Error()}
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		ce.Hint = strings.Join(hints, "; ")
	}

	var loadErr *loader.LoadError
	var unresolved *analysis.UnresolvedReferenceError
	switch {
	case errors.As(err, &loadErr):
		ce.Code = loadErr.Code
		if loadErr.Code == loader.ErrCodeNotFound || loadErr.Code == loader.ErrCodeFormat {
			return ce, ExitCommandError
		}
		if loadErr.Pos.IsValid() {
			ce.Details = loadErr.Pos.String()
		}
		return ce, ExitFailure
	case errors.As(err, &unresolved):
		ce.Code = ErrCodeUnresolved
		ce.Details = map[string]string{"name": unresolved.Name, "referrer": unresolved.Referrer}
		return ce, ExitFailure
	case errors.Is(err, analysis.ErrUnsupportedActorShape):
		ce.Code = ErrCodeActorShape
		return ce, ExitFailure
	case errors.Is(err, bindgen.ErrFileExists):
		ce.Code = ErrCodeWriteFailed
		return ce, ExitCommandError
	case errors.Is(err, store.ErrIncompleteRun), isCacheError(err):
		ce.Code = ErrCodeCache
		return ce, ExitCommandError
	case isConfigError(err):
		ce.Code = ErrCodeConfig
		return ce, ExitCommandError
	}
	return ce, ExitFailure
}

// configError marks failures while resolving configuration.
type configError struct{ err error }

func (e *configError) Error() string { return "configuration: " + e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

func isConfigError(err error) bool {
	var ce *configError
	return errors.As(err, &ce)
}

// cacheError marks failures of the artifact cache.
type cacheError struct{ err error }

func (e *cacheError) Error() string { return "cache: " + e.err.Error() }
func (e *cacheError) Unwrap() error { return e.err }

func isCacheError(err error) bool {
	var ce *cacheError
	return errors.As(err, &ce)
}
