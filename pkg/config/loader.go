package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	cerrors "github.com/arthur-debert/coffle/pkg/errors"
	"github.com/arthur-debert/coffle/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix of environment variables read as configuration
const EnvPrefix = "COFFLE_"

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions selects the layers above the defaults
type LoadOptions struct {
	// File is the user configuration file, TOML unless it has a .yaml or
	// .yml extension. Empty means the XDG location; a missing file is
	// skipped.
	File string

	// Flags are explicitly set command-line values by configuration key,
	// e.g. "repository" or "template.left_delim"
	Flags map[string]interface{}
}

// UserConfigPath returns $XDG_CONFIG_HOME/coffle/config.toml
func UserConfigPath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, logging.AppName, "config.toml")
}

// Load builds the configuration from all layers
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, cerrors.Wrap(err, cerrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User file
	path := opts.File
	if path == "" {
		path = UserConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, cerrors.Wrapf(err, cerrors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("loaded user config")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, cerrors.Wrap(err, cerrors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flags
	if len(opts.Flags) > 0 {
		if err := k.Load(confmap.Provider(opts.Flags, "."), nil); err != nil {
			return nil, cerrors.Wrap(err, cerrors.ErrConfigLoad, "failed to load flags")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, cerrors.Wrap(err, cerrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := postProcess(&cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("repository", cfg.Repository).
		Str("target", cfg.Target).
		Str("color", cfg.Color).
		Msg("configuration loaded")
	return &cfg, nil
}

// parserFor picks the parser by file extension
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return toml.Parser()
	}
}

// envKey maps COFFLE_TEMPLATE_LEFT_DELIM to template.left_delim and
// COFFLE_TEMPLATE_VARIABLES_NAME to template.variables.name
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))

	const section = "template_"
	if !strings.HasPrefix(key, section) {
		return key
	}
	key = strings.TrimPrefix(key, section)

	const variables = "variables_"
	if strings.HasPrefix(key, variables) {
		return "template.variables." + strings.TrimPrefix(key, variables)
	}
	return "template." + key
}
