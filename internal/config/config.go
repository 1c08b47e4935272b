package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/glexercises/newex/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// ErrUnknownKey is returned by Set for keys that are not settings.
var ErrUnknownKey = errors.New("unknown config key")

// Dir returns the path to the user config directory (~/.newex/).
// NEWEX_HOME overrides it.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the user config file (~/.newex/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// ProjectFilePath returns the path of the project config file in projectDir.
func ProjectFilePath(projectDir string) string {
	return filepath.Join(projectDir, branding.ProjectFile())
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Store holds the layered settings for one project directory.
type Store struct {
	v     *viper.Viper
	files []string // config files that were read, lowest precedence first
}

// Load layers defaults, the user file, the project file in projectDir, and
// NEWEX_* environment variables, in increasing precedence. Missing files are
// skipped; malformed ones are errors.
func Load(projectDir string) (*Store, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	s := &Store{v: v}
	for _, path := range []string{FilePath(), ProjectFilePath(projectDir)} {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		s.files = append(s.files, path)
	}

	return s, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeySourceDir, d.SourceDir)
	v.SetDefault(KeySourceExt, d.SourceExt)
	v.SetDefault(KeyVertexExt, d.Shader.VertexExt)
	v.SetDefault(KeyFragmentExt, d.Shader.FragmentExt)
	v.SetDefault(KeyShaders, d.Shader.Enabled)
	v.SetDefault(KeyBuildFile, d.BuildFile)
	v.SetDefault(KeyPlaceholder, d.Placeholder)
	v.SetDefault(KeyGitStage, d.Git.Stage)
}

// Files returns the config files that contributed to the store.
func (s *Store) Files() []string {
	return s.files
}

// Settings returns the resolved settings.
func (s *Store) Settings() *Settings {
	return &Settings{
		SourceDir: s.v.GetString(KeySourceDir),
		SourceExt: s.v.GetString(KeySourceExt),
		Shader: ShaderSettings{
			Enabled:     s.v.GetBool(KeyShaders),
			VertexExt:   s.v.GetString(KeyVertexExt),
			FragmentExt: s.v.GetString(KeyFragmentExt),
		},
		BuildFile:   s.v.GetString(KeyBuildFile),
		Placeholder: s.v.GetString(KeyPlaceholder),
		Git: GitSettings{
			Stage: s.v.GetBool(KeyGitStage),
		},
	}
}

// Get returns a config value by key. Returns empty string if not set.
func (s *Store) Get(key string) string {
	return s.v.GetString(key)
}

// Set writes a key-value pair to the user config file, creating it if
// needed. Boolean settings are stored as YAML booleans.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("%w %q (known keys: %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
	}

	var typed any = value
	if boolKeys[key] {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		typed = b
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType(fileType)
	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", configFile, err)
	}
	v.Set(key, typed)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
