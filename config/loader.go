package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/lametric/logger"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "LAMETRIC"

// Settings is the full file/env configuration consumed by Load.
type Settings struct {
	ClientConfig `yaml:",inline" mapstructure:",squash"`

	// APIKey is the raw device API key. When BasicAuthorization is empty,
	// Load encodes it as DeviceUser:APIKey.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// Logging configures the client logger.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// envKeys are bound explicitly so viper can resolve them during Unmarshal.
var envKeys = []string{
	"base_url",
	"basic_authorization",
	"api_version",
	"api_key",
	"request_options.timeout",
	"request_options.tls.skip_verify",
	"request_options.tls.ca_file",
	"request_options.tls.server_name",
	"logging.level",
	"logging.format",
	"logging.output",
}

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver finds config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns explicit paths if provided, otherwise searches the
// standard locations.
func (r *Resolver) ResolveFiles(opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.first(configSearchPaths())
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.first(envSearchPaths())
	}
	return resolved
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

func configSearchPaths() []string {
	var paths []string
	for _, dir := range []string{".", "./config", "../config"} {
		paths = append(paths, dir+"/lametric.yml", dir+"/lametric.yaml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "lametric", "lametric.yml"))
	}
	return paths
}

func envSearchPaths() []string {
	return []string{"./.env.lametric", "./config/.env.lametric", "./.env"}
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load reads settings from an optional YAML file, an optional .env file and
// LAMETRIC_* environment variables (highest precedence), merges them over
// Defaults and validates the result.
func Load(opts ...LoaderOption) (*Settings, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(lc)

	s, err := loadFromResolvedFiles(files, lc.FileSystem)
	if err != nil {
		return nil, err
	}

	if s.BasicAuthorization == "" && s.APIKey != "" {
		s.BasicAuthorization = EncodeCredentials(DeviceUser, s.APIKey)
	}
	s.ClientConfig = Merge(Defaults(), s.ClientConfig)
	s.Logging.ApplyDefaults()

	if err := s.ClientConfig.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := s.Logging.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

func loadFromResolvedFiles(files ResolvedFiles, fs FileSystem) (*Settings, error) {
	v := viper.New()

	// 1. YAML file
	if files.ConfigFile != "" && fs.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", files.ConfigFile, err)
		}
	}

	// 2. .env file, loaded into the process environment without
	// overriding variables that are already set
	if files.EnvFile != "" && fs.Exists(files.EnvFile) {
		if err := fs.LoadEnv(files.EnvFile); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", files.EnvFile, err)
		}
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &s, nil
}
