package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/bindgen/internal/bindgen"
	"github.com/roach88/bindgen/internal/config"
	"github.com/roach88/bindgen/internal/idl"
	"github.com/roach88/bindgen/internal/loader"
	"github.com/roach88/bindgen/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	ServiceName string
}

// GenerateResult is the JSON output of the generate command.
type GenerateResult struct {
	Service   string   `json:"service"`
	OutputDir string   `json:"output_dir"`
	Files     []string `json:"files"`
	Cached    bool     `json:"cached"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <program>",
		Short: "Generate bindings for a program document",
		Long: `Generate bindings for a program document.

Writes declarations/<service>.did.js and declarations/<service>.did.d.ts,
plus the native <service>.ts wrapper, into the output directory.
Settings come from flags, BINDGEN_* environment variables and
bindgen.toml, in that order of precedence.

Examples:
  bindgen generate ./ledger.did.yaml
  bindgen generate ./ledger.cue --out-dir src/bindings --force
  bindgen generate ./ledger.json --typescript --interface-file`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args[0])
		},
	}

	addOutputFlags(cmd.Flags())
	cmd.Flags().Bool("force", false, "overwrite existing files")
	cmd.Flags().StringVar(&opts.ServiceName, "service-name", "", "service name (default derived from the program file)")

	return cmd
}

// addOutputFlags registers the flags that shape the generated files.
func addOutputFlags(fs *pflag.FlagSet) {
	fs.String("out-dir", "", "output directory (default \"bindings\")")
	fs.Bool("root-exports", false, "export every declaration from the runtime description")
	fs.Bool("typescript", false, "also emit declarations/<service>.did.ts")
	fs.Bool("no-service", false, "skip the native wrapper")
	fs.Bool("interface-file", false, "also emit the native <service>.d.ts interface")
	fs.String("cache", "", "SQLite artifact cache path")
	fs.StringSlice("canister-env", nil, "emit canister-env.d.ts declaring these variables")
}

var flagKeys = map[string]string{
	"out-dir":        config.KeyOutputDir,
	"force":          config.KeyForce,
	"root-exports":   config.KeyRootExports,
	"typescript":     config.KeyTypeScript,
	"no-service":     config.KeyServiceDisabled,
	"interface-file": config.KeyInterfaceFile,
	"cache":          config.KeyCache,
	"canister-env":   config.KeyCanisterEnvVars,
}

// resolveConfig layers flags over the environment and bindgen.toml.
// Only flags set on the command line override lower layers.
func resolveConfig(cmd *cobra.Command, opts *RootOptions) (*config.Config, error) {
	v, err := config.New(".", opts.Config)
	if err != nil {
		return nil, &configError{err}
	}
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, &configError{errors.Wrapf(err, "bind --%s", name)}
		}
	}
	cfg, err := config.Decode(v)
	if err != nil {
		return nil, &configError{err}
	}
	return cfg, nil
}

// generation is a program turned into the files it should produce.
type generation struct {
	Service string
	Config  *config.Config
	Files   []bindgen.File
	Cached  bool
}

// prepare loads input and generates its files, reading through the
// artifact cache when one is configured.
func prepare(cmd *cobra.Command, opts *RootOptions, input, service string) (*generation, error) {
	log := newLogger(opts, cmd.ErrOrStderr())

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	prog, err := loader.Load(input)
	if err != nil {
		return nil, err
	}
	if service == "" {
		service = bindgen.ServiceName(input)
	}
	log.Debug("loaded program", "input", input, "service", service, "types", prog.Env.Len(), "actor", prog.HasActor())

	res, cached, err := generateCached(cmd.Context(), cfg, prog, service, log)
	if err != nil {
		return nil, err
	}
	return &generation{
		Service: service,
		Config:  cfg,
		Files:   bindgen.Layout(service, res, cfg.Layout()),
		Cached:  cached,
	}, nil
}

func generateCached(ctx context.Context, cfg *config.Config, prog *idl.Program, service string, log *slog.Logger) (*bindgen.Result, bool, error) {
	gen := func() (*bindgen.Result, error) {
		return bindgen.Generate(prog, bindgen.Options{
			ServiceName: service,
			RootExports: cfg.Declarations.RootExports,
			Logger:      log,
		})
	}
	if cfg.Cache == "" {
		res, err := gen()
		return res, false, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(cfg.Cache)
	if err != nil {
		return nil, false, &cacheError{err}
	}
	defer st.Close()

	key, err := store.KeyFor(prog, cfg.OptionsKey(service))
	if err != nil {
		return nil, false, &cacheError{err}
	}
	res, run, ok, err := st.Lookup(ctx, key)
	if err != nil {
		return nil, false, &cacheError{err}
	}
	if ok {
		log.Debug("cache hit", "run", run.ID, "seq", run.Seq)
		return res, true, nil
	}

	res, err = gen()
	if err != nil {
		return nil, false, err
	}
	run, err = st.Save(ctx, service, key, res)
	if err != nil {
		return nil, false, &cacheError{err}
	}
	log.Debug("cached run", "run", run.ID, "seq", run.Seq)
	return res, false, nil
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions, input string) error {
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
	if err := bindgen.Write(g.Config.OutputDir, g.Files, g.Config.Force); err != nil {
		return formatter.Fail(err)
	}

	result := GenerateResult{
		Service:   g.Service,
		OutputDir: g.Config.OutputDir,
		Files:     make([]string, len(g.Files)),
		Cached:    g.Cached,
	}
	for i, f := range g.Files {
		result.Files[i] = f.Path
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	for _, f := range result.Files {
		fmt.Fprintf(w, "✓ %s\n", f)
	}
	suffix := ""
	if result.Cached {
		suffix = " (cached)"
	}
	fmt.Fprintf(w, "Generated %d file(s) for %s in %s%s\n", len(result.Files), result.Service, result.OutputDir, suffix)
	return nil
}
