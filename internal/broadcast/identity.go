// Package broadcast holds the validated broadcast parameters of a radio
// service and derives the RadioDNS canonical name from them.
package broadcast

import (
	"regexp"
	"strings"
)

type Band string

const (
	BandFM  Band = "fm"
	BandAM  Band = "am"
	BandDAB Band = "dab"
	BandHD  Band = "hd"
	BandIP  Band = "ip"
)

const rootDomain = "radiodns.org"

// Identity is one of *FM, *AM, *DAB, *HD or *IP. The set is closed.
type Identity interface {
	Band() Band
	// CanonicalName returns the RadioDNS name for the service, or false when
	// the identity carries its authoritative domain directly.
	CanonicalName() (string, bool)

	sealed()
}

// CanonicalName derives the RadioDNS name of id. It performs no lookups.
// A nil identity, typed or not, has no name.
func CanonicalName(id Identity) (string, bool) {
	if id == nil {
		return "", false
	}
	return id.CanonicalName()
}

var allBands = []Band{BandFM, BandAM, BandDAB, BandHD, BandIP}

func AllBands() []Band {
	out := make([]Band, len(allBands))
	copy(out, allBands)
	return out
}

func ParseBand(raw string) (Band, bool) {
	b := Band(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range allBands {
		if b == known {
			return b, true
		}
	}
	return "", false
}

func hexPattern(lengths ...string) *regexp.Regexp {
	alts := make([]string, 0, len(lengths))
	for _, n := range lengths {
		alts = append(alts, "[0-9a-f]{"+n+"}")
	}
	return regexp.MustCompile("(?i)^(?:" + strings.Join(alts, "|") + ")$")
}

func joinLabels(band Band, labels ...string) string {
	labels = append(labels, string(band), rootDomain)
	return strings.ToLower(strings.Join(labels, "."))
}
