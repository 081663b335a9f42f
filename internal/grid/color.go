package grid

import (
	"fmt"

	"github.com/gogpu/gg"
)

// HexColor formats c as #rrggbb, dropping alpha. Channels are clamped to
// [0, 1] first.
func HexColor(c gg.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}

// IsHexColor reports whether s is '#' followed by 3, 4, 6 or 8 hex digits,
// the forms gg.Hex parses. gg.Hex turns anything else into opaque black.
func IsHexColor(s string) bool {
	if len(s) < 2 || s[0] != '#' {
		return false
	}
	switch len(s) - 1 {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func to8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
