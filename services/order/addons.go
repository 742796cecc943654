package order

import (
	"moveline/models"
)

// AddonActionKind selects the kind of addon change being applied.
type AddonActionKind string

const (
	// ActionToggle flips a single addon's membership.
	ActionToggle AddonActionKind = "toggle"
	// ActionSetBundle enables or disables the "don't worry" bundle.
	ActionSetBundle AddonActionKind = "setBundle"
)

// AddonAction describes one change to the addon selection.
type AddonAction struct {
	Kind    AddonActionKind
	Addon   models.Addon
	Enabled bool
}

// ApplyAddonChange is the single transition function for addon and bundle
// state. It keeps the invariant centralised: the bundle flag is true exactly
// when the full addon set is selected at the bundle price, and any individual
// toggle drops back to à-la-carte pricing.
func ApplyAddonChange(addons []models.Addon, bundle bool, action AddonAction) ([]models.Addon, bool) {
	switch action.Kind {
	case ActionToggle:
		next := make([]models.Addon, 0, len(addons)+1)
		removed := false
		for _, a := range addons {
			if a == action.Addon {
				removed = true
				continue
			}
			next = append(next, a)
		}
		if !removed {
			next = append(next, action.Addon)
		}
		// Bundle and à-la-carte pricing are mutually exclusive, so any
		// individual toggle clears the bundle.
		return next, false

	case ActionSetBundle:
		if action.Enabled {
			return append([]models.Addon(nil), models.AllAddons...), true
		}
		return []models.Addon{}, false
	}

	return addons, bundle
}
