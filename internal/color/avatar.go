// Package color derives display colors for workspace members.
package color

import (
	"fmt"
	"hash/fnv"
)

// Palette tuning. Muted saturation with raised lightness keeps member colors
// readable behind dark initials on the dashboard.
const (
	avatarSaturation = 0.45
	avatarLightness  = 0.62
)

// ForUser derives a stable hex color from a user ID. The hue comes from a
// hash of the ID, so a member keeps the same color across sessions and
// clients without anything being stored.
func ForUser(userID string) string {
	hasher := fnv.New32a()
	hasher.Write([]byte(userID))
	hue := float64(hasher.Sum32() % 360)

	r, g, b := hslToRGB(hue, avatarSaturation, avatarLightness)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// hslToRGB converts an HSL triple (hue 0-360, saturation and lightness 0-1)
// to 8-bit RGB channels.
func hslToRGB(hue, sat, light float64) (uint8, uint8, uint8) {
	if sat == 0 {
		gray := uint8(light * 255)
		return gray, gray, gray
	}

	hue /= 360.0

	upper := light + sat - light*sat
	if light < 0.5 {
		upper = light * (1 + sat)
	}
	lower := 2*light - upper

	r := channel(lower, upper, hue+1.0/3.0)
	g := channel(lower, upper, hue)
	b := channel(lower, upper, hue-1.0/3.0)
	return uint8(r * 255), uint8(g * 255), uint8(b * 255)
}

// channel resolves one RGB channel from the HSL bounds at the given hue
// offset, wrapping the offset into [0,1).
func channel(lower, upper, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return lower + (upper-lower)*6*t
	case t < 1.0/2.0:
		return upper
	case t < 2.0/3.0:
		return lower + (upper-lower)*(2.0/3.0-t)*6
	default:
		return lower
	}
}
