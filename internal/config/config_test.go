package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 30, cfg.SlotStepMinutes)
	assert.Equal(t, 3, cfg.AdmissionRetries)
	assert.Equal(t, uint(1), cfg.DefaultBarberID)
	assert.Equal(t, []string{"log", "audit"}, cfg.Sinks())
	assert.Equal(t, "America/Sao_Paulo", cfg.ShopTimezone)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SLOT_STEP_MINUTES", "15")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("EVENT_SINKS", "log,kafka")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.SlotStepMinutes)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers())
	assert.Equal(t, []string{"log", "kafka"}, cfg.Sinks())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			StorageDriver:   DriverMemory,
			JWTSecret:       "s",
			ShopTimezone:    "America/Sao_Paulo",
			SlotStepMinutes: 30,
			DefaultBarberID: 1,
			EventSinks:      "log",
			EventBuffer:     10,
			RateLimitPerMin: 60,
			RateLimitBurst:  10,
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())

	cases := map[string]func(*Config){
		"driver":   func(c *Config) { c.StorageDriver = "mysql" },
		"timezone": func(c *Config) { c.ShopTimezone = "Mars/Olympus" },
		"step":     func(c *Config) { c.SlotStepMinutes = 0 },
		"sink":     func(c *Config) { c.EventSinks = "log,sms" },
		"barber":   func(c *Config) { c.DefaultBarberID = 0 },
		"postgres": func(c *Config) { c.StorageDriver = DriverPostgres; c.DBUrl = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
