package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

const envPrefix = "GLIDEPATH_"

type Config struct {
	User    string `toml:"user"`
	DataDir string `toml:"data_dir"`
	// storage
	Store         string `toml:"store"`
	DBPath        string `toml:"db_path"`
	RedisAddr     string `toml:"redis_addr"`
	RedisDB       int    `toml:"redis_db"`
	RedisPassword string `toml:"redis_password"`
	// logging
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	LogJSON     bool   `toml:"log_json"`
	LogToStdout bool   `toml:"log_to_stdout"`
	// metrics
	MetricsFile string `toml:"metrics_file"`
}

// DefaultConfig returns the configuration used when nothing is set. Paths
// below dataDir are filled in by Load.
func DefaultConfig(dataDir string) Config {
	return Config{
		User:      "default",
		DataDir:   dataDir,
		Store:     StoreSQLite,
		RedisAddr: "localhost:6379",
		LogLevel:  "info",
	}
}

// DefaultDataDir is ~/.glidepath, or .glidepath when there is no home
// directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".glidepath"
	}
	return filepath.Join(home, ".glidepath")
}

// BackupDir is where dated backups are kept.
func (c Config) BackupDir() string {
	return filepath.Join(c.DataDir, "backups")
}

// Load builds the configuration from defaults, the TOML file at path, the
// given .env files and GLIDEPATH_* variables, in that order. An empty path
// falls back to GLIDEPATH_CONFIG and then to config.toml in the data dir;
// only an explicitly named file has to exist. Missing .env files are
// skipped.
func Load(path string, envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig(DefaultDataDir())
	if v := os.Getenv(envPrefix + "DATA_DIR"); v != "" {
		cfg.DataDir = v
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv(envPrefix + "CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = filepath.Join(cfg.DataDir, "config.toml")
	}
	if err := decodeFile(path, explicit, &cfg); err != nil {
		return Config{}, err
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.fillPaths()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	// existing variables win over .env entries
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

func decodeFile(path string, required bool, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"USER":           &cfg.User,
		"DATA_DIR":       &cfg.DataDir,
		"STORE":          &cfg.Store,
		"DB_PATH":        &cfg.DBPath,
		"REDIS_ADDR":     &cfg.RedisAddr,
		"REDIS_PASSWORD": &cfg.RedisPassword,
		"LOG_LEVEL":      &cfg.LogLevel,
		"LOG_FILE":       &cfg.LogFile,
		"METRICS_FILE":   &cfg.MetricsFile,
	}
	for name, dst := range strs {
		if v := os.Getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"LOG_JSON":      &cfg.LogJSON,
		"LOG_TO_STDOUT": &cfg.LogToStdout,
	}
	for name, dst := range bools {
		v := os.Getenv(envPrefix + name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = b
	}

	if v := os.Getenv(envPrefix + "REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", envPrefix, err)
		}
		cfg.RedisDB = n
	}
	return nil
}

func (c *Config) fillPaths() {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "glidepath.db")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, "logs", "glidepath")
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.User) == "" {
		return errors.New("config: user must not be empty")
	}
	switch c.Store {
	case StoreSQLite, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("config: unknown store %q (want %s, %s or %s)", c.Store, StoreSQLite, StoreRedis, StoreMemory)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config: redis_db must not be negative, got %d", c.RedisDB)
	}
	return nil
}
