package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bindgen/internal/analysis"
	"github.com/roach88/bindgen/internal/bindgen"
	"github.com/roach88/bindgen/internal/idl"
	"github.com/roach88/bindgen/internal/loader"
)

// InspectResult describes how a program will be emitted.
type InspectResult struct {
	HasActor   bool                `json:"has_actor"`
	Defs       []string            `json:"defs"`
	Recs       []string            `json:"recs"`
	Groups     [][]string          `json:"groups"`
	Swaps      []analysis.Swap     `json:"swaps"`
	Collisions []bindgen.Collision `json:"collisions"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <program>",
		Short: "Show the emission plan of a program",
		Long: `Show the emission plan of a program without writing files.

Lists the declarations in emission order, the ones that need a
forward declaration, the strongly connected groups of the reference
graph, any func/service marker swaps and identifier collisions.

Examples:
  bindgen inspect ./ledger.did.yaml
  bindgen inspect ./ledger.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

// Inspect computes the emission plan of prog.
func Inspect(prog *idl.Program) (*InspectResult, error) {
	var p *analysis.Plan
	var err error
	if prog.HasActor() {
		if err := analysis.CheckActor(prog.Env, prog.Actor); err != nil {
			return nil, err
		}
		p, err = analysis.PlanActor(prog.Env, prog.Actor)
	} else {
		p, err = analysis.PlanAll(prog.Env)
	}
	if err != nil {
		return nil, err
	}

	res := &InspectResult{
		HasActor:   prog.HasActor(),
		Defs:       p.Defs,
		Recs:       p.Recs.Sorted(),
		Groups:     analysis.Groups(prog.Env, p.Defs),
		Swaps:      p.Swaps,
		Collisions: bindgen.Collisions(prog),
	}
	if res.Defs == nil {
		res.Defs = []string{}
	}
	if res.Recs == nil {
		res.Recs = []string{}
	}
	if res.Groups == nil {
		res.Groups = [][]string{}
	}
	if res.Swaps == nil {
		res.Swaps = []analysis.Swap{}
	}
	if res.Collisions == nil {
		res.Collisions = []bindgen.Collision{}
	}
	return res, nil
}

func runInspect(cmd *cobra.Command, opts *RootOptions, input string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	prog, err := loader.Load(input)
	if err != nil {
		return formatter.Fail(err)
	}
	res, err := Inspect(prog)
	if err != nil {
		return formatter.Fail(err)
	}

	if opts.Format == "json" {
		return formatter.Success(res)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Actor: %v\n", res.HasActor)
	fmt.Fprintf(w, "Definitions (%d):\n", len(res.Defs))
	recs := analysis.NewSet(res.Recs...)
	for _, d := range res.Defs {
		marker := " "
		if recs.Has(d) {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %s\n", marker, d)
	}
	for _, g := range res.Groups {
		fmt.Fprintf(w, "Recursive group: %s\n", strings.Join(g, ", "))
	}
	for _, s := range res.Swaps {
		fmt.Fprintf(w, "Swap: %s -> %s\n", s.Func, s.Service)
	}
	for _, c := range res.Collisions {
		fmt.Fprintf(w, "Collision (%s, %s): %s <- %s\n", c.Dialect, c.Scope, c.Escaped, strings.Join(c.Sources, ", "))
	}
	return nil
}
