package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mbaillet/vet-planner/pkg/core/calendar"
)

// Window is an opening window of the clinic day, half-open [Start, End)
type Window struct {
	Start string `yaml:"start" validate:"required,hhmm"`
	End   string `yaml:"end" validate:"required,hhmm"`
}

// DayHours is the clinic's configuration for one weekday
type DayHours struct {
	Open      bool    `yaml:"open"`
	Morning   *Window `yaml:"morning,omitempty"`
	Afternoon *Window `yaml:"afternoon,omitempty"`
}

// Config represents the application configuration
type Config struct {
	ClinicID    string `yaml:"clinicID" validate:"required,uuid"`
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// ShowASVColumn prepends the ASV pseudo-column to the day grid
	ShowASVColumn bool `yaml:"showASVColumn"`

	// VeterinarianColumnOrder lists veterinarian ids in display order;
	// empty means alphabetical
	VeterinarianColumnOrder []string `yaml:"veterinarianColumnOrder,omitempty"`

	// OpeningHours maps lowercase English weekday names to day hours.
	// The sunday entry doubles as the public-holiday schedule.
	OpeningHours map[string]DayHours `yaml:"openingHours" validate:"required"`
}

var validate *validator.Validate

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmPattern.MatchString(fl.Field().String())
	})
}

var weekdayIndex = map[string]int{
	"sunday": 0, "monday": 1, "tuesday": 2, "wednesday": 3,
	"thursday": 4, "friday": 5, "saturday": 6,
}

// Load loads and validates the configuration from vet_planner_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct plus the cross-field rules the
// struct tags cannot express: known weekday keys, window ordering, and
// windows present on days marked open.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for day, hours := range cfg.OpeningHours {
		if _, ok := weekdayIndex[strings.ToLower(day)]; !ok {
			return fmt.Errorf("unknown weekday %q in openingHours", day)
		}

		if hours.Open && hours.Morning == nil && hours.Afternoon == nil {
			return fmt.Errorf("openingHours.%s is open but has no windows", day)
		}

		for name, window := range map[string]*Window{"morning": hours.Morning, "afternoon": hours.Afternoon} {
			if window == nil {
				continue
			}
			start, err := calendar.MinuteOfDay(window.Start)
			if err != nil {
				return fmt.Errorf("openingHours.%s.%s: %w", day, name, err)
			}
			end, err := calendar.MinuteOfDay(window.End)
			if err != nil {
				return fmt.Errorf("openingHours.%s.%s: %w", day, name, err)
			}
			if start >= end {
				return fmt.Errorf("openingHours.%s.%s: start %s is not before end %s", day, name, window.Start, window.End)
			}
		}
	}

	return nil
}

// WeekSchedule converts the configured opening hours into the calendar
// package's weekday-indexed schedule. Days absent from the config are closed.
func (cfg *Config) WeekSchedule() calendar.WeekSchedule {
	var week calendar.WeekSchedule

	for day, hours := range cfg.OpeningHours {
		index, ok := weekdayIndex[strings.ToLower(day)]
		if !ok {
			continue
		}

		schedule := calendar.DaySchedule{IsOpen: hours.Open}
		if hours.Morning != nil {
			schedule.Morning = &calendar.TimeWindow{Start: hours.Morning.Start, End: hours.Morning.End}
		}
		if hours.Afternoon != nil {
			schedule.Afternoon = &calendar.TimeWindow{Start: hours.Afternoon.Start, End: hours.Afternoon.End}
		}
		week[index] = schedule
	}

	return week
}

// findConfigFile searches for vet_planner_config.yaml in current directory
// and home directory
func findConfigFile() (string, error) {
	configFileName := "vet_planner_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
