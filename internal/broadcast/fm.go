package broadcast

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MinFMFrequencyKHz = 76000
	MaxFMFrequencyKHz = 108000
)

var (
	isoCountryPattern = regexp.MustCompile(`^[0-9A-Za-z]{2}$`)
	gccPattern        = hexPattern("3")
	piPattern         = hexPattern("4")
)

// FM identifies an RDS-carrying FM service.
type FM struct {
	country      string
	gcc          bool
	pi           string
	frequencyKHz int
}

// NewFM validates FM broadcast parameters. country is either an ISO 3166-1
// alpha-2 code or a GCC (RDS country code followed by the two-digit ECC).
func NewFM(country, pi string, frequencyKHz int) (*FM, error) {
	if err := requireFields(BandFM,
		field{"country", country},
		field{"pi", pi},
	); err != nil {
		return nil, err
	}

	var gcc bool
	switch {
	case isoCountryPattern.MatchString(country):
	case gccPattern.MatchString(country):
		gcc = true
	default:
		return nil, invalid(BandFM, "country", country,
			"an ISO 3166-1 alpha-2 country code or a 3-character hexadecimal GCC")
	}

	if !piPattern.MatchString(pi) {
		return nil, invalid(BandFM, "pi", pi, "a 4-character hexadecimal RDS PI code")
	}
	// The PI country nibble is the first digit of the GCC.
	if gcc && !strings.EqualFold(pi[:1], country[:1]) {
		return nil, invalid(BandFM, "pi", pi,
			fmt.Sprintf("a PI code whose first character matches the GCC %q", country))
	}

	if frequencyKHz < MinFMFrequencyKHz || frequencyKHz > MaxFMFrequencyKHz {
		return nil, invalid(BandFM, "frequency", fmt.Sprint(frequencyKHz),
			fmt.Sprintf("an integer kHz value between %d and %d", MinFMFrequencyKHz, MaxFMFrequencyKHz))
	}

	return &FM{country: country, gcc: gcc, pi: pi, frequencyKHz: frequencyKHz}, nil
}

func (*FM) Band() Band { return BandFM }

func (s *FM) Country() string { return s.country }

// HasGCC reports whether the country was supplied as a GCC rather than an ISO code.
func (s *FM) HasGCC() bool { return s.gcc }

func (s *FM) PI() string { return s.pi }

func (s *FM) FrequencyKHz() int { return s.frequencyKHz }

func (s *FM) CanonicalName() (string, bool) {
	if s == nil {
		return "", false
	}
	return joinLabels(BandFM, FrequencyLabel(s.frequencyKHz), s.pi, s.country), true
}

func (*FM) sealed() {}

// FrequencyLabel renders a kHz frequency in tens of kHz, zero-padded to five
// digits: 98500 becomes "09850".
func FrequencyLabel(frequencyKHz int) string {
	return fmt.Sprintf("%05d", frequencyKHz/10)
}
