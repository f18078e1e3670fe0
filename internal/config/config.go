package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "exprgen.yaml"

// DefaultMatrixPath is the character table looked up in the working directory.
const DefaultMatrixPath = "char_matrix.csv"

// Redis configures the optional Redis dataset store.
type Redis struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db" validate:"gte=0"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl" validate:"gte=0"`
}

// Config represents the structure of exprgen.yaml.
type Config struct {
	Matrix      string        `yaml:"matrix" json:"matrix"`
	OutputDir   string        `yaml:"output_dir" json:"output_dir"`
	Deadline    time.Duration `yaml:"deadline" json:"deadline" validate:"gt=0"`
	Seed        *uint64       `yaml:"seed" json:"seed"`
	Workers     int           `yaml:"workers" json:"workers" validate:"gte=1,lte=256"`
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts" validate:"gte=0"`
	RandomShare float64       `yaml:"random_share" json:"random_share" validate:"gte=0,lte=1"`
	LogLevel    string        `yaml:"log_level" json:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	MetricsFile string        `yaml:"metrics_file" json:"metrics_file"`
	Redis       Redis         `yaml:"redis" json:"redis"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		OutputDir:   ".",
		Deadline:    time.Second,
		Workers:     1,
		RandomShare: 0.1,
		LogLevel:    "warn",
	}
}

// Load reads a YAML configuration file on top of the defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

var validate = func() *validator.Validate {
	v := validator.New()
	// Report yaml keys rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.Split(f.Tag.Get("yaml"), ",")[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}()

// errorMessages maps validation tags to friendly messages.
var errorMessages = map[string]string{
	"gt":    "'%s' must be greater than %s",
	"gte":   "'%s' must be at least %s",
	"lte":   "'%s' must be at most %s",
	"oneof": "'%s' must be one of [%s]",
}

// Validate checks value ranges and returns every violation at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if msg, ok := errorMessages[fe.Tag()]; ok {
			msgs = append(msgs, fmt.Sprintf(msg, fe.Namespace()[len("Config."):], fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("'%s' is invalid: %s", fe.Field(), fe.Tag()))
	}
	sort.Strings(msgs)
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
