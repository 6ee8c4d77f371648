package bindgen

import (
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/roach88/bindgen/internal/analysis"
	"github.com/roach88/bindgen/internal/ident"
	"github.com/roach88/bindgen/internal/idl"
	"github.com/roach88/bindgen/internal/javascript"
	"github.com/roach88/bindgen/internal/native"
	"github.com/roach88/bindgen/internal/typescript"
)

// Options configure one generation.
type Options struct {
	// ServiceName is the file stem used to name the actor's interface,
	// wrapper class and import paths.
	ServiceName string

	// RootExports makes the runtime description export its declarations
	// along with idlService and idlInitArgs.
	RootExports bool

	// Logger receives debug output about the analysis. Nil discards it.
	Logger *slog.Logger
}

// Result holds every artifact of one program.
type Result struct {
	DeclarationsJS         string `json:"declarations_js"`
	DeclarationsTypeScript string `json:"declarations_typescript"`
	DeclarationsTS         string `json:"declarations_ts"`
	InterfaceTS            string `json:"interface_ts"`
	ServiceTS              string `json:"service_ts"`
}

// Generate runs every backend over prog.
func Generate(prog *idl.Program, opts Options) (*Result, error) {
	if prog == nil || prog.Env == nil {
		return nil, errors.AssertionFailedf("generate: program has no type environment")
	}
	if opts.ServiceName == "" {
		opts.ServiceName = DefaultServiceName
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = log.With("service", opts.ServiceName)

	if prog.HasActor() {
		if err := analysis.CheckActor(prog.Env, prog.Actor); err != nil {
			return nil, err
		}
	}
	if err := logPlan(log, prog); err != nil {
		return nil, err
	}
	for _, c := range Collisions(prog) {
		log.Warn("identifiers escape to the same name",
			"dialect", c.Dialect,
			"escaped", c.Escaped,
			"sources", c.Sources,
			"scope", c.Scope)
	}

	jsOpts := javascript.Options{RootExports: opts.RootExports}
	nativeOpts := native.Options{ServiceName: opts.ServiceName}

	var res Result
	var err error
	if res.DeclarationsJS, err = javascript.Compile(prog, jsOpts); err != nil {
		return nil, errors.Wrap(err, "runtime description")
	}
	if res.DeclarationsTypeScript, err = javascript.CompileTypeScript(prog, jsOpts); err != nil {
		return nil, errors.Wrap(err, "typed runtime description")
	}
	if res.DeclarationsTS, err = typescript.Compile(prog, typescript.Options{RootExports: opts.RootExports}); err != nil {
		return nil, errors.Wrap(err, "declarations")
	}
	iface, err := native.CompileInterface(prog, nativeOpts)
	if err != nil {
		return nil, errors.Wrap(err, "native interface")
	}
	res.InterfaceTS = iface.Render()
	wrapper, err := native.CompileWrapper(prog, nativeOpts)
	if err != nil {
		return nil, errors.Wrap(err, "native wrapper")
	}
	res.ServiceTS = wrapper.Render()

	log.Debug("generated bindings",
		"js_bytes", len(res.DeclarationsJS),
		"service_bytes", len(res.ServiceTS))
	return &res, nil
}

// logPlan reports the emission plan. Resolution errors surface here
// first, naming the declaration that holds the bad reference.
func logPlan(log *slog.Logger, prog *idl.Program) error {
	var p *analysis.Plan
	var err error
	if prog.HasActor() {
		p, err = analysis.PlanActor(prog.Env, prog.Actor)
	} else {
		p, err = analysis.PlanAll(prog.Env)
	}
	if err != nil {
		return err
	}
	log.Debug("planned declarations", "defs", len(p.Defs), "recs", p.Recs.Sorted())
	for _, s := range p.Swaps {
		log.Debug("swapped recursion marker", "func", s.Func, "service", s.Service)
	}
	return nil
}

// Collision is an ident.Collision found in a particular scope.
type Collision struct {
	ident.Collision
	Dialect string `json:"dialect"`
	Scope   string `json:"scope"`
}

// Collisions reports identifiers that escape to the same output name.
// Declaration names are checked against both dialects; member names
// within each record, variant and service against TypeScript.
func Collisions(prog *idl.Program) []Collision {
	var out []Collision
	names := prog.Env.Names()
	for _, kw := range []ident.Keywords{ident.JavaScript, ident.TypeScript} {
		for _, c := range kw.Collisions(names) {
			out = append(out, Collision{Collision: c, Dialect: kw.Name(), Scope: "declarations"})
		}
	}
	for _, name := range names {
		t, _ := prog.Env.Lookup(name)
		for _, c := range ident.TypeScript.Collisions(memberNames(t)) {
			out = append(out, Collision{Collision: c, Dialect: ident.TypeScript.Name(), Scope: name})
		}
	}
	if prog.HasActor() {
		if svc, err := analysis.ActorService(prog.Env, prog.Actor); err == nil {
			for _, c := range ident.TypeScript.Collisions(memberNames(svc)) {
				out = append(out, Collision{Collision: c, Dialect: ident.TypeScript.Name(), Scope: analysis.ReferrerActor})
			}
		}
	}
	return out
}

func memberNames(t idl.Type) []string {
	var fs []idl.Field
	switch t := t.(type) {
	case idl.Record:
		fs = t.Fields
	case idl.Variant:
		fs = t.Fields
	case idl.Service:
		out := make([]string, len(t.Methods))
		for i, m := range t.Methods {
			out[i] = m.Name
		}
		return out
	}
	var out []string
	for _, f := range fs {
		if name, ok := f.Label.Name(); ok {
			out = append(out, name)
		}
	}
	return out
}
