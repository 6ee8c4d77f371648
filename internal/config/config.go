// Package config loads generator settings from bindgen.toml, BINDGEN_*
// environment variables and command-line flags, in increasing order of
// precedence.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/roach88/bindgen/internal/bindgen"
)

const (
	// FileName is the project configuration file looked up in the
	// working directory.
	FileName = "bindgen.toml"
	// EnvPrefix prefixes environment overrides, e.g. BINDGEN_OUTPUT_DIR.
	EnvPrefix = "BINDGEN"
)

// Keys, in dotted form.
const (
	KeyOutputDir         = "output_dir"
	KeyForce             = "force"
	KeyRootExports       = "declarations.root_exports"
	KeyTypeScript        = "declarations.typescript"
	KeyServiceDisabled   = "service.disabled"
	KeyInterfaceFile     = "service.interface_file"
	KeyCache             = "cache"
	KeyCanisterEnvVars   = "canister_env.variables"
	defaultOutputDirName = "bindings"
)

// Config is the resolved generator configuration.
type Config struct {
	OutputDir    string             `mapstructure:"output_dir"`
	Force        bool               `mapstructure:"force"`
	Declarations DeclarationsConfig `mapstructure:"declarations"`
	Service      ServiceConfig      `mapstructure:"service"`
	Cache        string             `mapstructure:"cache"`
	CanisterEnv  CanisterEnvConfig  `mapstructure:"canister_env"`
}

// DeclarationsConfig controls the declarations/ directory.
type DeclarationsConfig struct {
	RootExports bool `mapstructure:"root_exports"`
	TypeScript  bool `mapstructure:"typescript"`
}

// ServiceConfig controls the native wrapper and interface files.
type ServiceConfig struct {
	Disabled      bool `mapstructure:"disabled"`
	InterfaceFile bool `mapstructure:"interface_file"`
}

// CanisterEnvConfig lists the variables declared in canister-env.d.ts.
type CanisterEnvConfig struct {
	Variables []string `mapstructure:"variables"`
}

// SetDefaults installs the default for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutputDir, defaultOutputDirName)
	v.SetDefault(KeyForce, false)
	v.SetDefault(KeyRootExports, false)
	v.SetDefault(KeyTypeScript, false)
	v.SetDefault(KeyServiceDisabled, false)
	v.SetDefault(KeyInterfaceFile, false)
	v.SetDefault(KeyCache, "")
	v.SetDefault(KeyCanisterEnvVars, []string{})
}

// New builds a viper instance with defaults and environment binding,
// then reads configPath, or bindgen.toml in dir when configPath is
// empty. A missing bindgen.toml is not an error; a missing explicit
// file is.
func New(dir, configPath string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	v.SetConfigType("toml")
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", configPath)
		}
		return v, nil
	}

	if dir == "" {
		dir = "."
	}
	v.SetConfigName(strings.TrimSuffix(FileName, ".toml"))
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "read %s", FileName)
		}
	}
	return v, nil
}

// Decode unmarshals the settings held by v.
func Decode(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return &c, nil
}

// Load is New followed by Decode.
func Load(dir, configPath string) (*Config, error) {
	v, err := New(dir, configPath)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// Layout converts the output switches to bindgen layout options.
func (c *Config) Layout() bindgen.LayoutOptions {
	return bindgen.LayoutOptions{
		TypeScriptDeclarations: c.Declarations.TypeScript,
		ServiceDisabled:        c.Service.Disabled,
		InterfaceFile:          c.Service.InterfaceFile,
		CanisterEnv:            c.CanisterEnv.Variables,
	}
}

// OptionsKey is the generation-relevant part of the configuration, used
// to key cached results.
func (c *Config) OptionsKey(service string) map[string]any {
	return map[string]any{
		"service":      service,
		"root_exports": c.Declarations.RootExports,
	}
}
