package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/pkg/types"
)

// Config is the full service configuration loaded from TOML.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	CRMService CRMServiceConfig `toml:"crm_service"`
	Events     EventsConfig     `toml:"events"`
	Redis      RedisConfig      `toml:"redis"`
	Facility   FacilityConfig   `toml:"facility"`
	Pricing    PricingConfig    `toml:"pricing"`
	Drafts     DraftsConfig     `toml:"drafts"`
}

// ServerConfig configures the HTTP listener. Timeouts are in seconds.
type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// DatabaseConfig configures the PostgreSQL connection pool.
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN builds a lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig configures file logging.
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig toggles Prometheus instrumentation.
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// CRMServiceConfig points at the customer directory service.
type CRMServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// EventsConfig configures the RabbitMQ publisher for confirmed
// reservations. Disabled means a no-op publisher is wired instead.
type EventsConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Queue   string `toml:"queue"`
}

// RedisConfig configures the tier lookup cache.
type RedisConfig struct {
	Enabled        bool   `toml:"enabled"`
	Addr           string `toml:"addr"`
	Password       string `toml:"password"`
	DB             int    `toml:"db"`
	TierTTLMinutes int    `toml:"tier_ttl_minutes"`
}

// TierTTL returns the cache lifetime for tier entries.
func (r RedisConfig) TierTTL() time.Duration {
	return time.Duration(r.TierTTLMinutes) * time.Minute
}

// FacilityConfig holds the facility timezone and operating schedule.
type FacilityConfig struct {
	Timezone string      `toml:"timezone"`
	Hours    HoursConfig `toml:"hours"`
}

// Location resolves the configured IANA timezone.
func (f FacilityConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(f.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid facility timezone %q: %w", f.Timezone, err)
	}
	return loc, nil
}

// HoursConfig is the per-weekday operating schedule.
type HoursConfig struct {
	Monday    DayHoursConfig `toml:"monday"`
	Tuesday   DayHoursConfig `toml:"tuesday"`
	Wednesday DayHoursConfig `toml:"wednesday"`
	Thursday  DayHoursConfig `toml:"thursday"`
	Friday    DayHoursConfig `toml:"friday"`
	Saturday  DayHoursConfig `toml:"saturday"`
	Sunday    DayHoursConfig `toml:"sunday"`
}

// DayHoursConfig is one weekday's span in "HH:MM" strings.
type DayHoursConfig struct {
	Closed bool   `toml:"closed"`
	Open   string `toml:"open"`
	Close  string `toml:"close"`
}

func (d DayHoursConfig) toDomain(day string) (domain.DayHours, error) {
	if d.Closed {
		return domain.DayHours{Closed: true}, nil
	}

	open, err := types.NewTimeStringFromString(d.Open)
	if err != nil {
		return domain.DayHours{}, fmt.Errorf("config: %s open time: %w", day, err)
	}
	closeAt, err := types.NewTimeStringFromString(d.Close)
	if err != nil {
		return domain.DayHours{}, fmt.Errorf("config: %s close time: %w", day, err)
	}
	if !open.IsBefore(closeAt) {
		return domain.DayHours{}, fmt.Errorf("config: %s hours: open %s must precede close %s", day, open, closeAt)
	}

	return domain.DayHours{Open: open, Close: closeAt}, nil
}

// ToSchedule converts the configured hours into the domain schedule.
func (h HoursConfig) ToSchedule() (domain.WeekSchedule, error) {
	var schedule domain.WeekSchedule
	var err error

	if schedule.Monday, err = h.Monday.toDomain("monday"); err != nil {
		return schedule, err
	}
	if schedule.Tuesday, err = h.Tuesday.toDomain("tuesday"); err != nil {
		return schedule, err
	}
	if schedule.Wednesday, err = h.Wednesday.toDomain("wednesday"); err != nil {
		return schedule, err
	}
	if schedule.Thursday, err = h.Thursday.toDomain("thursday"); err != nil {
		return schedule, err
	}
	if schedule.Friday, err = h.Friday.toDomain("friday"); err != nil {
		return schedule, err
	}
	if schedule.Saturday, err = h.Saturday.toDomain("saturday"); err != nil {
		return schedule, err
	}
	if schedule.Sunday, err = h.Sunday.toDomain("sunday"); err != nil {
		return schedule, err
	}

	return schedule, nil
}

// PricingConfig holds the facility pricing knobs.
type PricingConfig struct {
	Currency            string  `toml:"currency"`
	TaxRate             float64 `toml:"tax_rate"`
	ExtraResourceHourly float64 `toml:"extra_resource_hourly"`
	EventHourly         float64 `toml:"event_hourly"`
	ClassHourly         float64 `toml:"class_hourly"`
	AttendeeThreshold   int     `toml:"attendee_threshold"`
	PerAttendeeFee      float64 `toml:"per_attendee_fee"`
	EventDepositPercent float64 `toml:"event_deposit_percent"`
}

// ToRates converts config values into the domain rates struct.
func (p PricingConfig) ToRates() domain.PricingRates {
	return domain.PricingRates{
		Currency:            p.Currency,
		TaxRate:             p.TaxRate,
		ExtraResourceHourly: p.ExtraResourceHourly,
		EventHourly:         p.EventHourly,
		ClassHourly:         p.ClassHourly,
		AttendeeThreshold:   p.AttendeeThreshold,
		PerAttendeeFee:      p.PerAttendeeFee,
		EventDepositPercent: p.EventDepositPercent,
	}
}

// DraftsConfig tunes the in-memory draft lifecycle.
type DraftsConfig struct {
	DebounceMS            int    `toml:"debounce_ms"`
	AvailabilityTimeoutMS int    `toml:"availability_timeout_ms"`
	IdleExpiryMinutes     int    `toml:"idle_expiry_minutes"`
	JanitorSchedule       string `toml:"janitor_schedule"`
}

// Debounce returns the settle delay before an availability check fires.
func (d DraftsConfig) Debounce() time.Duration {
	return time.Duration(d.DebounceMS) * time.Millisecond
}

// AvailabilityTimeout returns the bounded wait for an availability check.
func (d DraftsConfig) AvailabilityTimeout() time.Duration {
	return time.Duration(d.AvailabilityTimeoutMS) * time.Millisecond
}

// IdleExpiry returns how long an untouched draft survives.
func (d DraftsConfig) IdleExpiry() time.Duration {
	return time.Duration(d.IdleExpiryMinutes) * time.Minute
}

// Load reads, defaults and validates the configuration file.
// CLUBOS_DB_PASSWORD, CLUBOS_AMQP_URL and CLUBOS_REDIS_ADDR environment
// variables override their file counterparts so secrets can stay out of
// the TOML.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "clubos-booking"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	if c.CRMService.Timeout == 0 {
		c.CRMService.Timeout = 5
	}

	if c.Redis.TierTTLMinutes == 0 {
		c.Redis.TierTTLMinutes = 10
	}

	if c.Facility.Timezone == "" {
		c.Facility.Timezone = "America/Toronto"
	}
	defaultDay := func(d *DayHoursConfig) {
		if !d.Closed && d.Open == "" && d.Close == "" {
			d.Open = "09:00"
			d.Close = "23:00"
		}
	}
	defaultDay(&c.Facility.Hours.Monday)
	defaultDay(&c.Facility.Hours.Tuesday)
	defaultDay(&c.Facility.Hours.Wednesday)
	defaultDay(&c.Facility.Hours.Thursday)
	defaultDay(&c.Facility.Hours.Friday)
	defaultDay(&c.Facility.Hours.Saturday)
	defaultDay(&c.Facility.Hours.Sunday)

	if c.Pricing.Currency == "" {
		c.Pricing.Currency = domain.DefaultCurrency
	}
	if c.Pricing.TaxRate == 0 {
		c.Pricing.TaxRate = 0.13
	}
	if c.Pricing.ExtraResourceHourly == 0 {
		c.Pricing.ExtraResourceHourly = 35
	}
	if c.Pricing.EventHourly == 0 {
		c.Pricing.EventHourly = 120
	}
	if c.Pricing.ClassHourly == 0 {
		c.Pricing.ClassHourly = 80
	}
	if c.Pricing.AttendeeThreshold == 0 {
		c.Pricing.AttendeeThreshold = 10
	}
	if c.Pricing.PerAttendeeFee == 0 {
		c.Pricing.PerAttendeeFee = 5
	}
	if c.Pricing.EventDepositPercent == 0 {
		c.Pricing.EventDepositPercent = 25
	}

	if c.Drafts.DebounceMS == 0 {
		c.Drafts.DebounceMS = 500
	}
	if c.Drafts.AvailabilityTimeoutMS == 0 {
		c.Drafts.AvailabilityTimeoutMS = 3000
	}
	if c.Drafts.IdleExpiryMinutes == 0 {
		c.Drafts.IdleExpiryMinutes = 30
	}
	if c.Drafts.JanitorSchedule == "" {
		c.Drafts.JanitorSchedule = "*/5 * * * *"
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CLUBOS_DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("CLUBOS_AMQP_URL"); v != "" {
		c.Events.URL = v
	}
	if v := os.Getenv("CLUBOS_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("config: database.port is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if c.CRMService.URL == "" {
		return fmt.Errorf("config: crm_service.url is required")
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("config: events.url is required when events are enabled")
	}
	if c.Events.Enabled && c.Events.Queue == "" {
		return fmt.Errorf("config: events.queue is required when events are enabled")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis is enabled")
	}
	if c.Pricing.TaxRate < 0 || c.Pricing.TaxRate >= 1 {
		return fmt.Errorf("config: pricing.tax_rate must be in [0, 1)")
	}

	if _, err := c.Facility.Location(); err != nil {
		return err
	}
	if _, err := c.Facility.Hours.ToSchedule(); err != nil {
		return err
	}
	return nil
}
