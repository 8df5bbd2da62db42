package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/roach88/voicesync/internal/artifact"
	"github.com/roach88/voicesync/internal/logging"
	"github.com/roach88/voicesync/internal/render"
)

// EnvPrefix prefixes every environment override (VOICESYNC_PATHS_DATABASE).
const EnvPrefix = "VOICESYNC"

// Config holds all settings for a voicesync run.
type Config struct {
	// Paths locates the database, the generated artifacts and the journal.
	Paths PathsConfig `mapstructure:"paths"`
	// Java names the classes the generated modules declare and reference.
	Java JavaConfig `mapstructure:"java"`
	// Namespace prefixes asset references in the sound mapping.
	Namespace string `mapstructure:"namespace" default:"climp"`
	// Log holds configuration for the logger.
	Log logging.Config `mapstructure:"log"`

	// Root is the project directory relative paths resolve against.
	Root string `mapstructure:"-"`
}

// PathsConfig holds project-relative file locations.
type PathsConfig struct {
	Database  string `mapstructure:"database" default:"docs/va/voicelines.json"`
	Lookup    string `mapstructure:"lookup" default:"src/main/java/com/asbjborg/climp/speech/ClimpSpeechLibrary.java"`
	Registry  string `mapstructure:"registry" default:"src/main/java/com/asbjborg/climp/sound/ClimpSoundEvents.java"`
	Mapping   string `mapstructure:"mapping" default:"src/main/resources/assets/climp/sounds.json"`
	SoundsDir string `mapstructure:"sounds_dir" default:"src/main/resources/assets/climp/sounds"`
	// Journal is the sync journal database; empty disables journaling.
	Journal string `mapstructure:"journal" default:""`
}

// JavaConfig holds the package and class names of the generated modules.
type JavaConfig struct {
	LookupPackage   string `mapstructure:"lookup_package" default:"com.asbjborg.climp.speech"`
	LookupClass     string `mapstructure:"lookup_class" default:"ClimpSpeechLibrary"`
	SpeechTypeClass string `mapstructure:"speech_type_class" default:"ClimpSpeechType"`
	RegistryPackage string `mapstructure:"registry_package" default:"com.asbjborg.climp.sound"`
	RegistryClass   string `mapstructure:"registry_class" default:"ClimpSoundEvents"`
	ModClass        string `mapstructure:"mod_class" default:"com.asbjborg.climp.ClimpMod"`
}

// Load reads configuration for the project at root. Sources, lowest
// precedence first: struct defaults, the config file, .env in root, and
// VOICESYNC_* environment variables.
//
// file names an explicit config file; when empty, voicesync.{yaml,yml,json,toml}
// in root is used if present.
func Load(root, file string) (*Config, error) {
	if root == "" {
		root = "."
	}

	// Ignore error if file doesn't exist
	_ = godotenv.Overload(filepath.Join(root, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("voicesync")
		v.AddConfigPath(root)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Root = root
	return &cfg, nil
}

// Resolve returns p relative to the project root. Absolute and empty
// paths are returned unchanged.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// DatabasePath is the resolved database location.
func (c *Config) DatabasePath() string {
	return c.Resolve(c.Paths.Database)
}

// JournalPath is the resolved journal location, or "" when disabled.
func (c *Config) JournalPath() string {
	return c.Resolve(c.Paths.Journal)
}

// SoundsDir is the resolved sound asset directory.
func (c *Config) SoundsDir() string {
	return c.Resolve(c.Paths.SoundsDir)
}

// Targets returns the resolved artifact destinations.
func (c *Config) Targets() artifact.Targets {
	return artifact.Targets{
		Lookup:   c.Resolve(c.Paths.Lookup),
		Registry: c.Resolve(c.Paths.Registry),
		Mapping:  c.Resolve(c.Paths.Mapping),
	}
}

// RenderOptions returns the generator options. The header names the
// database path as configured, so output does not depend on where the
// tool runs from.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Source:          filepath.ToSlash(c.Paths.Database),
		Namespace:       c.Namespace,
		LookupPackage:   c.Java.LookupPackage,
		LookupClass:     c.Java.LookupClass,
		SpeechTypeClass: c.Java.SpeechTypeClass,
		RegistryPackage: c.Java.RegistryPackage,
		RegistryClass:   c.Java.RegistryClass,
		ModClass:        c.Java.ModClass,
	}
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" || tag == "-" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
