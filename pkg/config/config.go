// Package config loads dotstrap configuration in layers: embedded
// defaults, then a repository-level config file (.dotstrap.toml or
// .dotstrap.yaml), then DOTSTRAP_* environment variables. The result
// is an immutable value passed explicitly into every component.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dotstrap/dotstrap/pkg/errors"
)

// EnvPrefix is the prefix of environment variables consumed here.
const EnvPrefix = "DOTSTRAP_"

// LinkSpec declares one desired symlink: a source inside the managed
// repository and a target in the home directory (~/ expansion applies).
type LinkSpec struct {
	Source string `koanf:"source"`
	Target string `koanf:"target"`
}

// Config is the resolved configuration for one invocation.
type Config struct {
	DryRun   bool       `koanf:"dry_run"`
	Verbose  int        `koanf:"verbose"`
	RepoRoot string     `koanf:"repo_root"`
	LogFile  string     `koanf:"log_file"`
	Links    []LinkSpec `koanf:"links"`
}

// repoConfigCandidates are tried in order; the first one present wins.
var repoConfigCandidates = []struct {
	name   string
	parser koanf.Parser
}{
	{".dotstrap.toml", toml.Parser()},
	{"dotstrap.toml", toml.Parser()},
	{".dotstrap.yaml", yaml.Parser()},
	{"dotstrap.yaml", yaml.Parser()},
}

// Load builds the layered configuration for the given repository root.
func Load(repoRoot string) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Repository config, if present
	for _, candidate := range repoConfigCandidates {
		path := filepath.Join(repoRoot, candidate.name)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), candidate.parser); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
			}
			break
		}
	}

	// 3. Environment variables (DOTSTRAP_DRY_RUN=1 etc.)
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			TagName:          "koanf",
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if cfg.RepoRoot == "" {
		cfg.RepoRoot = repoRoot
	}

	return &cfg, nil
}
