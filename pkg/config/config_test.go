package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, SeedSourceNone, cfg.SeedSource)
	assert.Equal(t, 15*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, 2.8, cfg.Analytics.LowGPAThreshold)
	assert.Equal(t, 3, cfg.ETL.MaxRetries)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("SEED_SOURCE", "POSTGRES")
	v.Set("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	v.Set("ANALYTICS_CACHE_TTL", "not-a-duration")

	cfg := fromViper(v)
	assert.Equal(t, SeedSourcePostgres, cfg.SeedSource)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10*time.Minute, cfg.Analytics.CacheTTL)
}
