package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/pkg/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const minimalConfig = `
[database]
host = "localhost"
port = 5432
user = "clubos"
password = "clubos"
dbname = "clubos_booking"

[crm_service]
url = "http://localhost:8090"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "clubos-booking", cfg.Metrics.ServiceName)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "America/Toronto", cfg.Facility.Timezone)

	assert.Equal(t, "CAD", cfg.Pricing.Currency)
	assert.InDelta(t, 0.13, cfg.Pricing.TaxRate, 1e-9)
	assert.Equal(t, 10, cfg.Pricing.AttendeeThreshold)
	assert.InDelta(t, 5.0, cfg.Pricing.PerAttendeeFee, 1e-9)

	assert.Equal(t, 500*time.Millisecond, cfg.Drafts.Debounce())
	assert.Equal(t, 3*time.Second, cfg.Drafts.AvailabilityTimeout())
	assert.Equal(t, 30*time.Minute, cfg.Drafts.IdleExpiry())
	assert.Equal(t, "*/5 * * * *", cfg.Drafts.JanitorSchedule)

	schedule, err := cfg.Facility.Hours.ToSchedule()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), schedule.Monday.Open)
	assert.Equal(t, types.TimeString("23:00"), schedule.Monday.Close)
	assert.False(t, schedule.Sunday.Closed)
}

func TestLoad_FullConfig(t *testing.T) {
	body := minimalConfig + `
[server]
http_port = 9000

[logs]
file = "logs/app.log"
level = "debug"

[metrics]
enabled = true
service_name = "clubos-booking-test"

[facility]
timezone = "America/Halifax"

[facility.hours.sunday]
closed = true

[facility.hours.monday]
open = "08:00"
close = "22:00"

[pricing]
tax_rate = 0.15

[drafts]
debounce_ms = 250
`
	cfg, err := Load(writeConfig(t, body))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.True(t, cfg.Metrics.Enabled)
	assert.InDelta(t, 0.15, cfg.Pricing.TaxRate, 1e-9)
	assert.Equal(t, 250*time.Millisecond, cfg.Drafts.Debounce())

	loc, err := cfg.Facility.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Halifax", loc.String())

	schedule, err := cfg.Facility.Hours.ToSchedule()
	require.NoError(t, err)
	assert.True(t, schedule.Sunday.Closed)
	assert.Equal(t, types.TimeString("08:00"), schedule.Monday.Open)
	assert.Equal(t, types.TimeString("09:00"), schedule.Tuesday.Open, "unlisted days keep defaults")
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing database host",
			body: `
[database]
port = 5432
user = "clubos"
dbname = "clubos_booking"

[crm_service]
url = "http://localhost:8090"
`,
		},
		{
			name: "missing crm url",
			body: `
[database]
host = "localhost"
port = 5432
user = "clubos"
dbname = "clubos_booking"
`,
		},
		{
			name: "events enabled without url",
			body: minimalConfig + `
[events]
enabled = true
queue = "reservations"
`,
		},
		{
			name: "bad timezone",
			body: minimalConfig + `
[facility]
timezone = "Mars/Olympus"
`,
		},
		{
			name: "open after close",
			body: minimalConfig + `
[facility.hours.friday]
open = "23:00"
close = "09:00"
`,
		},
		{
			name: "tax rate out of range",
			body: minimalConfig + `
[pricing]
tax_rate = 1.3
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLUBOS_DB_PASSWORD", "s3cret")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())
}
