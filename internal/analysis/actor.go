package analysis

import (
	"github.com/roach88/bindgen/internal/idl"
)

// ActorService resolves an actor to its service. Accepted shapes are a
// Service, a Var naming one and a Class wrapping either.
func ActorService(env *idl.Env, actor idl.Type) (idl.Service, error) {
	switch a := actor.(type) {
	case idl.Service:
		return a, nil
	case idl.Class:
		return ActorService(env, a.Service)
	case idl.Var:
		def, ok := env.Lookup(a.Name)
		if !ok {
			return idl.Service{}, &UnresolvedReferenceError{Name: a.Name, Referrer: ReferrerActor}
		}
		traced, ok := env.Trace(def)
		if !ok {
			return idl.Service{}, unsupportedActor(a)
		}
		if svc, ok := traced.(idl.Service); ok {
			return svc, nil
		}
		return idl.Service{}, unsupportedActor(traced)
	default:
		return idl.Service{}, unsupportedActor(actor)
	}
}

// InitArgs returns the constructor arguments of a Class actor, or nil.
func InitArgs(actor idl.Type) []idl.Type {
	if c, ok := actor.(idl.Class); ok {
		return c.Args
	}
	return nil
}

// CheckActor validates the actor shape without resolving the service.
func CheckActor(env *idl.Env, actor idl.Type) error {
	_, err := ActorService(env, actor)
	return err
}
