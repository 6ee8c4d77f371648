package analysis

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/roach88/bindgen/internal/idl"
)

// ErrUnsupportedActorShape marks an actor that is neither a service, a
// reference to one nor a class wrapping one. A well-formed front-end
// never produces it, so it is reported as an assertion failure.
var ErrUnsupportedActorShape = errors.New("unsupported actor shape")

// UnresolvedReferenceError reports a reference to an undeclared name.
type UnresolvedReferenceError struct {
	Name     string // the missing declaration
	Referrer string // declaration (or "actor") containing the reference
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved type reference %q in %s", e.Name, e.Referrer)
}

// IsUnresolvedReference checks if an error is an UnresolvedReferenceError.
func IsUnresolvedReference(err error) bool {
	var e *UnresolvedReferenceError
	return errors.As(err, &e)
}

func unsupportedActor(t idl.Type) error {
	return errors.WithAssertionFailure(
		errors.Wrapf(ErrUnsupportedActorShape, "actor is %s", t.Kind()))
}
