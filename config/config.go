package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Rules holds every tunable the shift engine depends on. All of these were
// scattered constants in earlier iterations of the product; they are supplied
// here so no component bakes in its own copy.
type Rules struct {
	MaxShiftHours       int `yaml:"maxShiftHours"`
	MinMinutesBetween   int `yaml:"minMinutesBetweenShifts"`
	CancelWindowMinutes int `yaml:"cancelWindowMinutes"`
	WeekStartHour       int `yaml:"weekStartHour"`
	WeekStartDay        int `yaml:"weekStartDay"` // time.Weekday numbering, 1 = Monday
	RefreshIntervalMins int `yaml:"refreshIntervalMinutes"`
	TickIntervalSeconds int `yaml:"tickIntervalSeconds"`
}

type Config struct {
	DSN            string `yaml:"dsn"`
	Listen         string `yaml:"listen"`
	MaxConnections int    `yaml:"maxConnections"`
	SigningSecret  string `yaml:"signingSecret"` // base64
	AdminPassword  string `yaml:"adminPassword"`
	CompanyID      string `yaml:"companyId"`
	Rules          Rules  `yaml:"rules"`
}

func (r Rules) MaxShiftDuration() time.Duration {
	return time.Duration(r.MaxShiftHours) * time.Hour
}

func (r Rules) MinTimeBetweenShifts() time.Duration {
	return time.Duration(r.MinMinutesBetween) * time.Minute
}

func (r Rules) CancelWindow() time.Duration {
	return time.Duration(r.CancelWindowMinutes) * time.Minute
}

func (r Rules) RefreshInterval() time.Duration {
	return time.Duration(r.RefreshIntervalMins) * time.Minute
}

func (r Rules) TickInterval() time.Duration {
	return time.Duration(r.TickIntervalSeconds) * time.Second
}

// DefaultRules are the production values. 23h was used for the anomaly cutoff
// in one revision; 18h is the value that shipped.
func DefaultRules() Rules {
	return Rules{
		MaxShiftHours:       18,
		MinMinutesBetween:   5,
		CancelWindowMinutes: 3,
		WeekStartHour:       7,
		WeekStartDay:        int(time.Monday),
		RefreshIntervalMins: 7,
		TickIntervalSeconds: 1,
	}
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

// Load reads the yaml config at path once and applies env overrides.
// An empty path falls back to env-only configuration.
func Load(path string) (*Config, error) {
	once.Do(func() {
		c := &Config{
			Listen:         "0.0.0.0:8090",
			MaxConnections: 10,
			Rules:          DefaultRules(),
		}

		if path != "" {
			raw, err := os.ReadFile(path)
			if err != nil {
				loadErr = fmt.Errorf("read config: %w", err)
				return
			}
			if err := yaml.Unmarshal(raw, c); err != nil {
				loadErr = fmt.Errorf("unmarshal yaml: %w", err)
				return
			}
		}

		applyEnv(c)

		if c.DSN == "" {
			loadErr = fmt.Errorf("missing DSN")
			return
		}
		cfg = c
	})

	return cfg, loadErr
}

func applyEnv(c *Config) {
	if v := os.Getenv("DSN"); v != "" {
		c.DSN = v
	}
	if v := os.Getenv("LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("FICHAJE_SIGNING_SECRET"); v != "" {
		c.SigningSecret = v
	}
	if v := os.Getenv("FICHAJE_ADMIN_PASSWORD"); v != "" {
		c.AdminPassword = v
	}
	if v := os.Getenv("FICHAJE_COMPANY_ID"); v != "" {
		c.CompanyID = v
	}
	if v := os.Getenv("FICHAJE_MAX_SHIFT_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Rules.MaxShiftHours = n
		}
	}
}
