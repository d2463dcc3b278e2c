package config

import (
	"fmt"
	"os"

	"baselines/internal/classifier"
	"baselines/internal/corpus"
	"baselines/internal/models"

	"gopkg.in/yaml.v3"
)

// Supported database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

// KernelLinear is the only kernel the SVM baseline supports
const KernelLinear = "linear"

// Config holds application configuration
type Config struct {
	Labels struct {
		Mode string `yaml:"mode"` // "binary" or "fine"
	} `yaml:"labels"`

	Split struct {
		TrainFraction float64 `yaml:"train_fraction"`
	} `yaml:"split"`

	SVM struct {
		Kernel    string  `yaml:"kernel"`
		C         float64 `yaml:"c"`
		MaxIter   int     `yaml:"max_iter"`
		Tolerance float64 `yaml:"tolerance"`
		Seed      int64   `yaml:"seed"`
	} `yaml:"svm"`

	Database struct {
		Type string `yaml:"type"` // "sqlite" or "postgres"
		Path string `yaml:"path"` // SQLite file
		URL  string `yaml:"url"`  // PostgreSQL URL
	} `yaml:"database"`

	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Default returns the configuration used when no file is given:
// binary labels, 80/20 split, linear SVM with C=1
func Default() *Config {
	config := &Config{}
	config.setDefaults()
	return config
}

// LoadConfig loads configuration from YAML file
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	// Keys missing from the file keep their defaults; explicit values,
	// zeros included, override them and are checked by Validate
	config := Default()

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Expand environment variables in connection settings
	config.Database.Path = os.ExpandEnv(config.Database.Path)
	config.Database.URL = os.ExpandEnv(config.Database.URL)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return config, nil
}

func (c *Config) setDefaults() {
	if c.Labels.Mode == "" {
		c.Labels.Mode = string(models.Binary)
	}

	if c.Split.TrainFraction == 0 {
		c.Split.TrainFraction = corpus.DefaultTrainFraction
	}

	if c.SVM.Kernel == "" {
		c.SVM.Kernel = KernelLinear
	}

	if c.SVM.C == 0 {
		c.SVM.C = classifier.DefaultC
	}

	if c.SVM.MaxIter == 0 {
		c.SVM.MaxIter = classifier.DefaultMaxIter
	}

	if c.SVM.Tolerance == 0 {
		c.SVM.Tolerance = classifier.DefaultTolerance
	}

	if c.Database.Type == "" {
		c.Database.Type = DatabaseSQLite
	}

	if c.Database.Path == "" {
		c.Database.Path = "./data/baselines.db"
	}

	if c.Server.Port == "" {
		c.Server.Port = "8003"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate rejects settings the baselines cannot run with
func (c *Config) Validate() error {
	if _, err := models.ParseLabelMode(c.Labels.Mode); err != nil {
		return err
	}
	if c.Split.TrainFraction <= 0 || c.Split.TrainFraction >= 1 {
		return fmt.Errorf("split.train_fraction must be in (0, 1), got %v", c.Split.TrainFraction)
	}
	if c.SVM.Kernel != KernelLinear {
		return fmt.Errorf("unsupported svm.kernel %q (only %q)", c.SVM.Kernel, KernelLinear)
	}
	if c.SVM.C <= 0 {
		return fmt.Errorf("svm.c must be positive, got %v", c.SVM.C)
	}
	if c.SVM.MaxIter <= 0 {
		return fmt.Errorf("svm.max_iter must be positive, got %d", c.SVM.MaxIter)
	}
	if c.SVM.Tolerance <= 0 {
		return fmt.Errorf("svm.tolerance must be positive, got %v", c.SVM.Tolerance)
	}
	switch c.Database.Type {
	case DatabaseSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for sqlite")
		}
	case DatabasePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for postgres")
		}
	default:
		return fmt.Errorf("unknown database.type %q", c.Database.Type)
	}
	return nil
}

// LabelMode returns the validated label mode
func (c *Config) LabelMode() models.LabelMode {
	return models.LabelMode(c.Labels.Mode)
}

// SVMOptions converts the svm section into classifier options
func (c *Config) SVMOptions() classifier.SVMOptions {
	return classifier.SVMOptions{
		C:         c.SVM.C,
		MaxIter:   c.SVM.MaxIter,
		Tolerance: c.SVM.Tolerance,
		Seed:      c.SVM.Seed,
	}
}

// DSN returns the data source for the configured database type
func (c *Config) DSN() string {
	if c.Database.Type == DatabasePostgres {
		return c.Database.URL
	}
	return c.Database.Path
}
