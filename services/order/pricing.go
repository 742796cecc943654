package order

import (
	"moveline/models"
)

// Pricing constants, in whole currency units.
const (
	// BundlePrice is the flat price of the "don't worry" bundle; BundleSavings
	// is the display-only difference against buying all addons individually.
	BundlePrice   = 280
	BundleSavings = 60

	PricePerKm         = 2
	PricePerExtraMover = 30
)

// ServiceBasePrices maps each service type to its base price.
var ServiceBasePrices = map[models.ServiceType]int{
	models.ServiceHomeFurniture:  150,
	models.ServiceIntercity:      300,
	models.ServiceMovingStorage:  200,
	models.ServiceOfficeBusiness: 250,
}

// AddonPrices maps each addon to its individual price.
var AddonPrices = map[models.Addon]int{
	models.AddonPacking:        50,
	models.AddonLoading:        40,
	models.AddonTransportation: 100,
	models.AddonUnloading:      40,
	models.AddonUnpacking:      50,
	models.AddonDisassembly:    60,
}

// CalculatePrice computes the current price of an order from its fields. It
// is a pure function: it never caches and never mutates the order. The mover
// term goes negative below the two-mover baseline, which is intentional.
func CalculatePrice(o models.Order) int {
	price := 0

	if o.ServiceType != "" {
		price += ServiceBasePrices[o.ServiceType]
	}

	if o.HasDontWorryBundle {
		price += BundlePrice
	} else {
		for _, a := range o.Addons {
			price += AddonPrices[a]
		}
	}

	if o.EstimatedDistance != nil {
		price += *o.EstimatedDistance * PricePerKm
	}

	price += (o.NumberOfMovers - models.DefaultNumberOfMovers) * PricePerExtraMover

	return price
}
