package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/bindgen/internal/bindgen"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	ServiceName string
}

// CheckResult is the JSON output of the check command.
type CheckResult struct {
	Service   string   `json:"service"`
	OutputDir string   `json:"output_dir"`
	Stale     []string `json:"stale"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <program>",
		Short: "Verify generated bindings are up to date",
		Long: `Regenerate bindings in memory and compare them with the files on disk.

Exit codes:
  0 - Every file matches
  1 - One or more files are missing or differ
  2 - Command error (missing input, bad config, etc.)

Examples:
  bindgen check ./ledger.did.yaml
  bindgen check ./ledger.cue --out-dir src/bindings`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args[0])
		},
	}

	addOutputFlags(cmd.Flags())
	cmd.Flags().StringVar(&opts.ServiceName, "service-name", "", "service name (default derived from the program file)")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions, input string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	g, err := prepare(cmd, opts.RootOptions, input, opts.ServiceName)
	if err != nil {
		return formatter.Fail(err)
	}
	stale, err := bindgen.Stale(g.Config.OutputDir, g.Files)
	if err != nil {
		return formatter.Fail(err)
	}

	result := CheckResult{Service: g.Service, OutputDir: g.Config.OutputDir, Stale: stale}
	if result.Stale == nil {
		result.Stale = []string{}
	}

	if len(stale) > 0 {
		_ = formatter.Error(CLIError{
			Code:    ErrCodeStale,
			Message: fmt.Sprintf("%d generated file(s) out of date", len(stale)),
			Hint:    "run bindgen generate --force",
			Details: result,
		})
		if opts.Format != "json" {
			for _, p := range stale {
				fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", p)
			}
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d generated file(s) out of date", len(stale)))
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d file(s) up to date in %s\n", len(g.Files), g.Config.OutputDir)
	return nil
}
