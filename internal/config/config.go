package config

import (
	"slices"
	"strings"
	"time"
	_ "time/tzdata" // calendar.timezone must resolve on hosts without a zoneinfo database

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	Calendar CalendarConfig `mapstructure:"calendar"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

type InputConfig struct {
	File string `mapstructure:"file"`
}

type OutputConfig struct {
	File   string `mapstructure:"file"` // Empty means the Standard Output
	Format string `mapstructure:"format"`
}

type CalendarConfig struct {
	WeekStart string `mapstructure:"week_start"` // Monday of the first teaching week, YYYY-MM-DD
	Timezone  string `mapstructure:"timezone"`
}

var (
	OutputFormats   = []string{"json", "xlsx", "ics"}
	validLogFormats = []string{"console", "json"}
)

// Load reads the configuration; environment variables win over the config file, which wins over defaults.
// Callers override what they need and then call Validate.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("input.file", "")
	v.SetDefault("output.file", "")
	v.SetDefault("output.format", "json")
	v.SetDefault("calendar.week_start", "2026-09-07")
	v.SetDefault("calendar.timezone", "UTC")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SCHEDULING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Without a config file only defaults and environment variables apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	return &cfg, nil
}

// Validate checks the settings the run will use; the calendar is only checked for the "ics" format
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.Output.Format) {
		return errors.Errorf("output.format must be one of %v: %q", OutputFormats, c.Output.Format)
	}
	if !slices.Contains(validLogFormats, c.Log.Format) {
		return errors.Errorf("log.format must be one of %v: %q", validLogFormats, c.Log.Format)
	}
	if c.Input.File == "" {
		return errors.New("input.file must be specified")
	}
	if c.Output.Format == "ics" {
		if _, err := c.Calendar.Start(); err != nil {
			return err
		}
	}
	return nil
}

// Start returns calendar.week_start at midnight in calendar.timezone
func (c CalendarConfig) Start() (time.Time, error) {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "calendar.timezone %q", c.Timezone)
	}
	start, err := time.ParseInLocation(time.DateOnly, c.WeekStart, location)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "calendar.week_start %q", c.WeekStart)
	}
	if start.Weekday() != time.Monday {
		return time.Time{}, errors.Errorf("calendar.week_start must be a Monday: %v", c.WeekStart)
	}
	return start, nil
}
