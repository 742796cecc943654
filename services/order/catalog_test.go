package order

import (
	"testing"

	"moveline/models"

	"github.com/stretchr/testify/assert"
)

func TestCatalogMatchesPricingTables(t *testing.T) {
	cat := GetCatalog()

	assert.Len(t, cat.Services, len(ServiceBasePrices))
	for _, s := range cat.Services {
		assert.Equal(t, ServiceBasePrices[s.ID], s.BasePrice)
	}

	assert.Len(t, cat.Addons, len(AddonPrices))
	for _, a := range cat.Addons {
		assert.Equal(t, AddonPrices[a.ID], a.Price)
	}

	assert.Equal(t, BundlePrice, cat.BundlePrice)
	assert.Equal(t, BundleSavings, cat.BundleSavings)
}

func TestValidators(t *testing.T) {
	assert.True(t, IsValidServiceType(models.ServiceIntercity))
	assert.False(t, IsValidServiceType(models.ServiceType("piano-only")))

	assert.True(t, IsValidAddon(models.AddonDisassembly))
	assert.False(t, IsValidAddon(models.Addon("feng-shui")))
}
