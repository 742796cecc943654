package order

import (
	"testing"

	"moveline/models"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestCalculatePriceEmptyOrder(t *testing.T) {
	o := models.NewOrder()
	// A fresh order has the default two movers and no service selected.
	assert.Equal(t, 0, CalculatePrice(o))
}

func TestCalculatePriceFullBreakdown(t *testing.T) {
	o := models.NewOrder()
	o.ServiceType = models.ServiceHomeFurniture
	o.Addons = []models.Addon{models.AddonPacking, models.AddonLoading}
	o.EstimatedDistance = intPtr(10)
	o.NumberOfMovers = 4

	// 150 base + 50 + 40 addons + 10km * 2 + 2 extra movers * 30
	assert.Equal(t, 320, CalculatePrice(o))
}

func TestCalculatePriceBundleReplacesAddons(t *testing.T) {
	o := models.NewOrder()
	o.ServiceType = models.ServiceIntercity
	o.HasDontWorryBundle = true
	// Individual addon selections are ignored while the bundle is active.
	o.Addons = append([]models.Addon(nil), models.AllAddons...)

	assert.Equal(t, 300+BundlePrice, CalculatePrice(o))
}

func TestCalculatePriceBundleCheaperThanAllAddons(t *testing.T) {
	total := 0
	for _, p := range AddonPrices {
		total += p
	}
	assert.Equal(t, BundleSavings, total-BundlePrice)
}

func TestCalculatePriceFewerMoversDiscounts(t *testing.T) {
	o := models.NewOrder()
	o.ServiceType = models.ServiceMovingStorage
	o.NumberOfMovers = 1

	assert.Equal(t, 200-PricePerExtraMover, CalculatePrice(o))
}

func TestCalculatePriceIsPure(t *testing.T) {
	o := models.NewOrder()
	o.ServiceType = models.ServiceOfficeBusiness
	o.Addons = []models.Addon{models.AddonDisassembly}
	o.EstimatedDistance = intPtr(7)

	first := CalculatePrice(o)
	second := CalculatePrice(o)

	assert.Equal(t, first, second)
	assert.Equal(t, 0, o.TotalPrice, "pricing must not write back to the order")
	assert.Len(t, o.Addons, 1)
}
