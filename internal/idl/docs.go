package idl

// Docs is the syntax view of a program: documentation lines attached to
// declarations, their members and the actor.
//
// All accessors are nil-safe; a missing view yields no comments.
type Docs struct {
	Types map[string]DeclDocs
	Actor DeclDocs
}

// DeclDocs holds the lines for one declaration plus its members, keyed
// by field label or method name.
type DeclDocs struct {
	Lines   []string
	Members map[string][]string
}

// Decl returns the documentation for a declaration.
func (d *Docs) Decl(name string) DeclDocs {
	if d == nil {
		return DeclDocs{}
	}
	return d.Types[name]
}

// ActorDocs returns the documentation attached to the actor.
func (d *Docs) ActorDocs() DeclDocs {
	if d == nil {
		return DeclDocs{}
	}
	return d.Actor
}

// Member returns the documentation for a member.
func (dd DeclDocs) Member(name string) []string {
	if dd.Members == nil {
		return nil
	}
	return dd.Members[name]
}
