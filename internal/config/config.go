package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/schemagen-labs/schemagen/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by schemagen. Flag-backed keys share the flag's name.
const (
	KeyContext           = "context"
	KeyOutput            = "output"
	KeyConfiguration     = "configuration"
	KeyTFM               = "tfm"
	KeyDebug             = "debug"
	KeyLogLevel          = "log_level"
	KeyModuleExtension   = "module_extension"
	KeyFrameworkPrefixes = "diagnostics.framework_prefixes"
)

// flagKeys lists the flags whose defaults come from configuration.
var flagKeys = []string{KeyContext, KeyOutput, KeyConfiguration, KeyTFM, KeyDebug}

// Keys returns every key Set accepts.
func Keys() []string {
	return append(append([]string{}, flagKeys...), KeyLogLevel, KeyModuleExtension, KeyFrameworkPrefixes)
}

func known(key string) bool {
	for _, k := range Keys() {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// Dir returns the settings directory under the user's home, or under the
// working directory when no home is known.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the settings file path.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load points viper at the settings file and the prefixed environment. A
// missing file leaves only environment values and defaults.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyModuleExtension, ".so")

	_ = viper.ReadInConfig()
}

// BindFlags makes the flag-backed keys resolve to explicit flag values first,
// then environment and file values, then the flag defaults.
func BindFlags(flags *pflag.FlagSet) error {
	for _, key := range flagKeys {
		f := flags.Lookup(key)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return nil
}

// Get returns the effective string value of key.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns the effective boolean value of key.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStringSlice returns a list value. A comma-separated string is split.
func GetStringSlice(key string) []string {
	if !viper.IsSet(key) {
		return nil
	}
	var out []string
	for _, v := range viper.GetStringSlice(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Set stores value under a known key and rewrites the settings file.
func Set(key, value string) error {
	if !known(key) {
		return fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	viper.Set(strings.ToLower(key), value)
	if err := viper.WriteConfigAs(FilePath()); err != nil {
		return fmt.Errorf("writing %s: %w", FilePath(), err)
	}
	return nil
}
