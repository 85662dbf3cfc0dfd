// Package config loads the process configuration from the environment,
// with an optional YAML file pointed at by CONFIG_PATH.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds everything the CLIs need: file locations, the reference
// hour for the early-arrivals report and logging.
type Config struct {
	// DataDir holds the entity CSV tables (clientes/eventos/ventas).
	DataDir string `yaml:"data_dir" env:"LEDGER_DATA_DIR" env-default:"data"`

	// ScheduleFile is the semicolon-delimited schedule input.
	ScheduleFile string `yaml:"schedule_file" env:"LEDGER_SCHEDULE_FILE" env-default:"horarios.csv"`

	// RosterFile is the JSON roster of the menu-driven schedule variant.
	RosterFile string `yaml:"roster_file" env:"LEDGER_ROSTER_FILE" env-default:"horarios.json"`

	// ReportDir receives the derived report files.
	ReportDir string `yaml:"report_dir" env:"LEDGER_REPORT_DIR" env-default:"."`

	// ReferenceHour is the cutoff for the early-arrivals report.
	ReferenceHour int `yaml:"reference_hour" env:"LEDGER_REFERENCE_HOUR" env-default:"8"`

	// ArchivePath is the SQLite snapshot target.
	ArchivePath string `yaml:"archive_path" env:"LEDGER_ARCHIVE_PATH" env-default:"data/ledger.db"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LEDGER_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration. Priority: ENV > YAML > defaults. The YAML file
// is only required when CONFIG_PATH names it explicitly.
func Load() (Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("config: read env: %w", err)
		}
	}

	if cfg.ReferenceHour < 0 || cfg.ReferenceHour > 23 {
		return Config{}, fmt.Errorf("config: reference_hour %d: must be in [0,23]", cfg.ReferenceHour)
	}
	return cfg, nil
}
