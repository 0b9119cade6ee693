package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MIN_ADD_MONEY_AMOUNT", "not-a-number")
	t.Setenv("ADMIN_EMAILS", " root@example.com, ,ops@example.com ")
	t.Setenv("CATALOG_CACHE_TTL", "90s")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "10", cfg.MinAddMoneyAmount.String())
	assert.Equal(t, []string{"root@example.com", "ops@example.com"}, cfg.AdminEmails)
	assert.Equal(t, 90*time.Second, cfg.CatalogCacheTTL)
	assert.Equal(t, 10, cfg.RecentOrdersLimit)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 5*time.Minute, parseDuration("bogus", 5*time.Minute))
	assert.True(t, parseBool("yes?", true))
	assert.Equal(t, 10, parseInt("-3", 10))
	assert.Empty(t, parseStringSlice(""))
}
