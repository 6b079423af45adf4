package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/fx"
	"github.com/tourdesk/quote-service/internal/itinerary"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "1.2", cfg.Pricing.MarkupFactor)
	assert.Equal(t, "EUR", cfg.Pricing.BaseCurrency)
	assert.Equal(t, 30*time.Second, cfg.Catalog.Timeout)
	assert.Same(t, cfg, Get())

	ic, err := cfg.Pricing.ItineraryConfig()
	require.NoError(t, err)
	assert.Equal(t, "1.2", ic.MarkupFactor.String())
	assert.Equal(t, []catalog.ServiceType{catalog.ServiceEntranceFee, catalog.ServiceRestaurant}, ic.HeadcountServiceTypes)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := `
server:
  port: 8080
pricing:
  markup_factor: "1.35"
  headcount_service_types: [entrance-fee, restaurant, guide]
catalog:
  workbook_path: ./catalog.xlsx
  workbook_types: [extra]
fx:
  rates:
    TRY_EUR: "0.027"
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CATALOG_API_KEY=from-dotenv\n"), 0o644))
	t.Setenv("PORT", "9090")
	t.Setenv("QUOTE_SERVICE_PRICING_BASE_CURRENCY", "try")
	t.Setenv("CATALOG_BASE_URL", "http://catalog.local")

	cfg, err := Load("")
	require.NoError(t, err)
	t.Cleanup(func() { os.Unsetenv("CATALOG_API_KEY") })

	assert.Equal(t, 9090, cfg.Server.Port, "env overrides file")
	assert.Equal(t, "from-dotenv", cfg.Catalog.APIKey)
	assert.Equal(t, "0.027", cfg.FX.Rates["try_eur"])

	ic, err := cfg.Pricing.ItineraryConfig()
	require.NoError(t, err)
	assert.Equal(t, "1.35", ic.MarkupFactor.String())
	assert.Equal(t, "TRY", ic.BaseCurrency)
	assert.Len(t, ic.HeadcountServiceTypes, 3)

	opts, err := cfg.Catalog.RegistryOptions()
	require.NoError(t, err)
	require.NotNil(t, opts.HTTP)
	assert.Equal(t, "http://catalog.local", opts.HTTP.BaseURL)
	assert.Equal(t, 100*time.Millisecond, opts.HTTP.InitialBackoff)
	assert.Equal(t, []catalog.ServiceType{catalog.ServiceExtra}, opts.WorkbookTypes)
	assert.Equal(t, "windows-1254", opts.CSVEncoding)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPricingConfig_Invalid(t *testing.T) {
	_, err := PricingConfig{MarkupFactor: "abc"}.ItineraryConfig()
	var invalid itinerary.ErrInvalidConfig
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "markup_factor", invalid.Field)

	_, err = PricingConfig{MarkupFactor: "-1"}.ItineraryConfig()
	assert.Error(t, err)

	_, err = PricingConfig{HeadcountServiceTypes: []string{"spa"}}.ItineraryConfig()
	assert.Error(t, err)
}

type storedRates map[string]decimal.Decimal

func (s storedRates) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if r, ok := s[fx.PairKey(from, to)]; ok {
		return r, nil
	}
	return decimal.Zero, fx.ErrRateNotFound
}

func TestFXConfig_RateSource(t *testing.T) {
	ctx := context.Background()

	src, closeFn, err := FXConfig{Rates: map[string]string{"TRY_EUR": "0.027"}}.RateSource(ctx,
		storedRates{"USD_EUR": decimal.RequireFromString("0.92")})
	require.NoError(t, err)
	defer closeFn()

	rate, err := src.Rate(ctx, "TRY", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.027", rate.String())

	rate, err = src.Rate(ctx, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.92", rate.String(), "falls through to stored rates")

	_, err = src.Rate(ctx, "GBP", "EUR")
	assert.ErrorIs(t, err, fx.ErrRateNotFound)

	_, _, err = FXConfig{Rates: map[string]string{"TRYEUR": "1"}}.RateSource(ctx, nil)
	assert.Error(t, err)
}
