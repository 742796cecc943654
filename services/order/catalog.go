package order

import (
	"moveline/models"
)

// ServiceDetails describes one bookable moving service.
type ServiceDetails struct {
	ID        models.ServiceType `json:"id"`
	Name      string             `json:"name"`
	Icon      string             `json:"icon"`
	BasePrice int                `json:"basePrice"`
}

// AddonDetails describes one optional addon service.
type AddonDetails struct {
	ID    models.Addon `json:"id"`
	Name  string       `json:"name"`
	Price int          `json:"price"`
}

// Catalog is the full read-only service catalog shown at the first wizard
// steps. Prices are in whole currency units.
type Catalog struct {
	Services      []ServiceDetails `json:"services"`
	Addons        []AddonDetails   `json:"addons"`
	BundlePrice   int              `json:"bundlePrice"`
	BundleSavings int              `json:"bundleSavings"`
	PricePerKm    int              `json:"pricePerKm"`
	PerExtraMover int              `json:"pricePerExtraMover"`
}

var servicesCatalog = []ServiceDetails{
	{ID: models.ServiceHomeFurniture, Name: "Home & Furniture Moving", Icon: "🏠", BasePrice: 150},
	{ID: models.ServiceIntercity, Name: "Intercity Moving", Icon: "🛣️", BasePrice: 300},
	{ID: models.ServiceMovingStorage, Name: "Moving & Storage", Icon: "📦", BasePrice: 200},
	{ID: models.ServiceOfficeBusiness, Name: "Office & Business Moving", Icon: "🏢", BasePrice: 250},
}

var addonsCatalog = []AddonDetails{
	{ID: models.AddonPacking, Name: "Packing", Price: 50},
	{ID: models.AddonLoading, Name: "Loading", Price: 40},
	{ID: models.AddonTransportation, Name: "Transportation", Price: 100},
	{ID: models.AddonUnloading, Name: "Unloading", Price: 40},
	{ID: models.AddonUnpacking, Name: "Unpacking", Price: 50},
	{ID: models.AddonDisassembly, Name: "Disassembly", Price: 60},
}

// GetCatalog returns the static catalog.
func GetCatalog() Catalog {
	return Catalog{
		Services:      servicesCatalog,
		Addons:        addonsCatalog,
		BundlePrice:   BundlePrice,
		BundleSavings: BundleSavings,
		PricePerKm:    PricePerKm,
		PerExtraMover: PricePerExtraMover,
	}
}

// IsValidServiceType reports whether t names a catalog service.
func IsValidServiceType(t models.ServiceType) bool {
	for _, s := range servicesCatalog {
		if s.ID == t {
			return true
		}
	}
	return false
}

// IsValidAddon reports whether a names a catalog addon.
func IsValidAddon(a models.Addon) bool {
	for _, d := range addonsCatalog {
		if d.ID == a {
			return true
		}
	}
	return false
}
