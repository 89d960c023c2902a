package validate

import (
	"strings"
)

// MarkerDelimiter separates tokens in a GeneSeekr profile.
const MarkerDelimiter = ";"

// MarkerSet is the closed vocabulary of markers a report may mention.
type MarkerSet map[string]struct{}

// DefaultMarkers is the marker vocabulary GeneSeekr reports on for the
// supported genera.
var DefaultMarkers = []string{"invA", "stn", "IGS", "hlyA", "inlJ", "VT1", "VT2", "VT2f", "uidA", "eae"}

func NewMarkerSet(markers ...string) MarkerSet {
	ms := make(MarkerSet, len(markers))
	for _, m := range markers {
		ms[m] = struct{}{}
	}

	return ms
}

func (ms MarkerSet) Contains(marker string) bool {
	_, exists := ms[marker]
	return exists
}

// ParseMarkerProfile splits raw on the marker delimiter and keeps only tokens
// that are in vocabulary, in the order they appear. Matching is exact, and a
// token that repeats in raw is returned each time it appears.
func ParseMarkerProfile(raw string, vocabulary MarkerSet) []string {
	detected := make([]string, 0)

	for _, token := range strings.Split(raw, MarkerDelimiter) {
		if vocabulary.Contains(token) {
			detected = append(detected, token)
		}
	}

	return detected
}

// MarkerPresence reports, for each marker in panel, whether it was detected.
func MarkerPresence(detected []string, panel []string) map[string]bool {
	out := make(map[string]bool, len(panel))
	for _, m := range panel {
		out[m] = false
	}

	for _, d := range detected {
		if _, inPanel := out[d]; inPanel {
			out[d] = true
		}
	}

	return out
}

// PresenceSymbol renders marker presence the way report tables show it.
func PresenceSymbol(present bool) string {
	if present {
		return "+"
	}

	return "-"
}
