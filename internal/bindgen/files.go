package bindgen

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// Header comments prepended to every written artifact.
const (
	ESLintDisableComment = "/* eslint-disable */"
	TSNoCheckComment     = "// @ts-nocheck"
	DisclaimerComment    = "// This file was automatically generated by bindgen. Any changes will be overwritten."
)

// DefaultServiceName is used when the input file name yields nothing
// usable.
const DefaultServiceName = "service"

// CanisterEnvFile is the name of the environment declaration file.
const CanisterEnvFile = "canister-env.d.ts"

// ErrFileExists is returned by Write when a target exists and Force is
// off.
var ErrFileExists = errors.New("file already exists")

// Prepare adds the generated-file headers to an artifact.
func Prepare(binding string) string {
	return ESLintDisableComment + "\n\n" + TSNoCheckComment + "\n\n" + DisclaimerComment + "\n\n" + binding
}

var nonName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ServiceName derives a service name from an input path:
// "canisters/hello_world.did" and "hello_world.did.yaml" both become
// "hello_world".
func ServiceName(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.TrimSuffix(base, ".did")
	base = strings.Trim(nonName.ReplaceAllString(base, "_"), "_")
	if base == "" || base == "." {
		return DefaultServiceName
	}
	return base
}

// LayoutOptions select the optional outputs.
type LayoutOptions struct {
	// TypeScriptDeclarations also writes the merged declarations/<svc>.did.ts.
	TypeScriptDeclarations bool
	// ServiceDisabled skips <svc>.ts and <svc>.d.ts.
	ServiceDisabled bool
	// InterfaceFile also writes <svc>.d.ts.
	InterfaceFile bool
	// CanisterEnv lists variables for canister-env.d.ts. Empty skips it.
	CanisterEnv []string
}

// File is one artifact at a path relative to the output directory.
type File struct {
	Path    string
	Content string
}

// Layout maps a result to the files it produces, headers included.
func Layout(service string, res *Result, opts LayoutOptions) []File {
	decl := func(ext string) string {
		return filepath.Join("declarations", service+".did"+ext)
	}
	files := []File{
		{Path: decl(".d.ts"), Content: Prepare(res.DeclarationsTS)},
		{Path: decl(".js"), Content: Prepare(res.DeclarationsJS)},
	}
	if opts.TypeScriptDeclarations {
		files = append(files, File{Path: decl(".ts"), Content: Prepare(res.DeclarationsTypeScript)})
	}
	if !opts.ServiceDisabled {
		files = append(files, File{Path: service + ".ts", Content: Prepare(res.ServiceTS)})
		if opts.InterfaceFile {
			files = append(files, File{Path: service + ".d.ts", Content: Prepare(res.InterfaceTS)})
		}
	}
	if env := CanisterEnv(opts.CanisterEnv); env != "" {
		files = append(files, File{Path: CanisterEnvFile, Content: env})
	}
	return files
}

// CanisterEnv declares the environment variables available to the
// frontend. It keeps type checking on, so only the lint header is
// added.
func CanisterEnv(vars []string) string {
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(ESLintDisableComment + "\n\n" + DisclaimerComment + "\n\ninterface CanisterEnv {\n")
	for _, v := range vars {
		b.WriteString(`  readonly ["` + strings.ReplaceAll(v, `"`, `\"`) + `"]: string;` + "\n")
	}
	b.WriteString("}")
	return b.String()
}

// Write stores files under dir. Without force an existing file aborts
// the write before anything is touched.
func Write(dir string, files []File, force bool) error {
	if !force {
		for _, f := range files {
			path := filepath.Join(dir, f.Path)
			if _, err := os.Stat(path); err == nil {
				return errors.WithHint(
					errors.Wrapf(ErrFileExists, "%s", path),
					"pass --force (or set force = true) to overwrite generated files")
			}
		}
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return errors.Wrapf(err, "create directory for %s", f.Path)
		}
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return errors.Wrapf(err, "write %s", f.Path)
		}
	}
	return nil
}

// Stale compares files against what is on disk under dir and returns
// the paths that are missing or differ.
func Stale(dir string, files []File) ([]string, error) {
	var stale []string
	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(dir, f.Path))
		if errors.Is(err, os.ErrNotExist) {
			stale = append(stale, f.Path)
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", f.Path)
		}
		if string(data) != f.Content {
			stale = append(stale, f.Path)
		}
	}
	return stale, nil
}
