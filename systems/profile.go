package systems

import (
	"math"

	"github.com/pthm-cable/dotfield/config"
)

// Breakpoint classes.
const (
	ClassSmall   = "small"
	ClassMobile  = "mobile"
	ClassDesktop = "desktop"
)

// DeviceProfile bundles the per-breakpoint grid and interaction constants.
type DeviceProfile struct {
	Class   string
	Spacing float64
	Margin  float64

	// Squared radii. UpdateThickness gates the physics force,
	// DrawThickness normalizes shading. They are tuned independently.
	UpdateThickness float64
	DrawThickness   float64
}

// Breakpoint is one row of a ProfileTable.
type Breakpoint struct {
	MaxWidth float64 // inclusive, 0 = unbounded
	Profile  DeviceProfile
}

// ProfileTable maps viewport widths to device profiles.
// Rows are checked in order; the first row whose MaxWidth admits the width wins.
type ProfileTable []Breakpoint

// DefaultProfiles returns the built-in breakpoint table.
func DefaultProfiles() ProfileTable {
	return ProfileTable{
		{MaxWidth: 480, Profile: DeviceProfile{Class: ClassSmall, Spacing: 10, Margin: 0, UpdateThickness: 400, DrawThickness: 3600}},
		{MaxWidth: 768, Profile: DeviceProfile{Class: ClassMobile, Spacing: 10, Margin: 0, UpdateThickness: 400, DrawThickness: 4900}},
		{MaxWidth: 0, Profile: DeviceProfile{Class: ClassDesktop, Spacing: 10, Margin: 0, UpdateThickness: 2500, DrawThickness: 2500}},
	}
}

// ProfilesFromConfig builds a table from the derived (sorted) config rows.
// An empty config yields the default table.
func ProfilesFromConfig(cfg *config.Config) ProfileTable {
	rows := cfg.Derived.Profiles
	if len(rows) == 0 {
		return DefaultProfiles()
	}
	table := make(ProfileTable, 0, len(rows))
	for _, r := range rows {
		table = append(table, Breakpoint{
			MaxWidth: r.MaxWidth,
			Profile: DeviceProfile{
				Class:           r.Class,
				Spacing:         r.Spacing,
				Margin:          r.Margin,
				UpdateThickness: r.UpdateThickness,
				DrawThickness:   r.DrawThickness,
			},
		})
	}
	return table
}

// Resolve returns the profile for a viewport width. It is total: widths that
// match no bounded row (including NaN) fall through to the unbounded row, and
// a table without one falls back to its last row or the defaults.
func (t ProfileTable) Resolve(width float64) DeviceProfile {
	if len(t) == 0 {
		return DefaultProfiles().Resolve(width)
	}
	for _, bp := range t {
		if bp.MaxWidth == 0 || math.IsNaN(width) {
			continue
		}
		if width <= bp.MaxWidth {
			return bp.Profile
		}
	}
	for _, bp := range t {
		if bp.MaxWidth == 0 {
			return bp.Profile
		}
	}
	return t[len(t)-1].Profile
}

// ResolveProfile classifies a width against the default table.
func ResolveProfile(width float64) DeviceProfile {
	return DefaultProfiles().Resolve(width)
}
