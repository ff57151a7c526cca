package broadcast

import (
	"errors"
	"strings"
	"testing"
)

func TestCanonicalName_EndToEnd(t *testing.T) {
	fm, err := NewFM("e1", "c479", 98500)
	if err != nil {
		t.Fatalf("NewFM: %v", err)
	}
	am, err := NewAM("drm", "ABCD12")
	if err != nil {
		t.Fatalf("NewAM: %v", err)
	}
	dab, err := NewDAB("0ce", "c185", "d203", "0")
	if err != nil {
		t.Fatalf("NewDAB: %v", err)
	}
	hd, err := NewHD("0A0", "12345")
	if err != nil {
		t.Fatalf("NewHD: %v", err)
	}

	cases := []struct {
		name string
		id   Identity
		want string
	}{
		{"fm", fm, "09850.c479.e1.fm.radiodns.org"},
		{"am", am, "abcd12.drm.am.radiodns.org"},
		{"dab", dab, "0.d203.c185.0ce.dab.radiodns.org"},
		{"hd", hd, "12345.0a0.hd.radiodns.org"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CanonicalName(tc.id)
			if !ok {
				t.Fatalf("expected a canonical name")
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			again, _ := CanonicalName(tc.id)
			if again != got {
				t.Fatalf("expected deterministic output, got %q then %q", got, again)
			}
		})
	}
}

func TestCanonicalName_AlwaysLowerCase(t *testing.T) {
	fm, err := NewFM("CE1", "C479", 104100)
	if err != nil {
		t.Fatalf("NewFM: %v", err)
	}
	got, _ := fm.CanonicalName()
	if got != strings.ToLower(got) {
		t.Fatalf("expected lower-case name, got %q", got)
	}
	if got != "10410.c479.ce1.fm.radiodns.org" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestCanonicalName_IPHasNone(t *testing.T) {
	ip, err := NewIP("rdns.example.com")
	if err != nil {
		t.Fatalf("NewIP: %v", err)
	}
	if name, ok := CanonicalName(ip); ok || name != "" {
		t.Fatalf("expected no canonical name, got %q", name)
	}
	if ip.AuthoritativeDomain() != "rdns.example.com" {
		t.Fatalf("expected domain to be kept unchanged, got %q", ip.AuthoritativeDomain())
	}
	if name, ok := CanonicalName(nil); ok || name != "" {
		t.Fatalf("expected nil identity to have no name")
	}
}

func TestCanonicalName_TypedNil(t *testing.T) {
	for _, id := range []Identity{(*FM)(nil), (*AM)(nil), (*DAB)(nil), (*HD)(nil), (*IP)(nil)} {
		if name, ok := CanonicalName(id); ok || name != "" {
			t.Fatalf("%T: expected no name, got %q", id, name)
		}
	}
	if d := (*IP)(nil).AuthoritativeDomain(); d != "" {
		t.Fatalf("expected empty domain for nil IP, got %q", d)
	}
}

func TestFrequencyLabel(t *testing.T) {
	cases := map[int]string{
		98500:  "09850",
		76000:  "07600",
		108000: "10800",
		87650:  "08765",
	}
	for in, want := range cases {
		if got := FrequencyLabel(in); got != want {
			t.Fatalf("FrequencyLabel(%d): expected %q, got %q", in, want, got)
		}
	}
}

func TestNewFM_GCCCrossCheck(t *testing.T) {
	if _, err := NewFM("0FF", "0A12", 98500); err != nil {
		t.Fatalf("expected matching first digits to pass, got %v", err)
	}
	if _, err := NewFM("0ff", "0a12", 98500); err != nil {
		t.Fatalf("expected case-insensitive match to pass, got %v", err)
	}

	fm, err := NewFM("0FF", "1A12", 98500)
	if err == nil {
		t.Fatalf("expected mismatching PI to fail")
	}
	if fm != nil {
		t.Fatalf("expected no instance on failure")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "pi" {
		t.Fatalf("expected pi validation error, got %v", err)
	}

	// The cross-check does not apply to the ISO country form.
	if _, err := NewFM("gb", "1A12", 98500); err != nil {
		t.Fatalf("expected ISO country to skip the PI check, got %v", err)
	}
}

func TestNewFM_Validation(t *testing.T) {
	cases := []struct {
		name    string
		country string
		pi      string
		freq    int
		field   string
		missing bool
	}{
		{"missing country", "", "c479", 98500, "country", true},
		{"missing pi", "e1", "", 98500, "pi", true},
		{"missing before malformed", "zzzz", "", 98500, "pi", true},
		{"bad country", "e1x", "c479", 98500, "country", false},
		{"bad pi", "e1", "c47", 98500, "pi", false},
		{"non hex pi", "e1", "g479", 98500, "pi", false},
		{"low frequency", "e1", "c479", 75999, "frequency", false},
		{"high frequency", "e1", "c479", 108001, "frequency", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fm, err := NewFM(tc.country, tc.pi, tc.freq)
			if fm != nil {
				t.Fatalf("expected nil instance")
			}
			assertValidationError(t, err, tc.field, tc.missing)
		})
	}

	for _, freq := range []int{MinFMFrequencyKHz, MaxFMFrequencyKHz} {
		if _, err := NewFM("e1", "c479", freq); err != nil {
			t.Fatalf("expected %d to be accepted, got %v", freq, err)
		}
	}
}

func TestNewAM_Validation(t *testing.T) {
	cases := []struct {
		name    string
		system  string
		sid     string
		field   string
		missing bool
	}{
		{"missing system", "", "abcd12", "system", true},
		{"missing sid", "drm", "", "sid", true},
		{"unknown system", "dab", "abcd12", "system", false},
		{"short sid", "amss", "abcd1", "sid", false},
		{"non hex sid", "amss", "abcdxz", "sid", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			am, err := NewAM(tc.system, tc.sid)
			if am != nil {
				t.Fatalf("expected nil instance")
			}
			assertValidationError(t, err, tc.field, tc.missing)
		})
	}

	am, err := NewAM("amss", "0F0F0F")
	if err != nil {
		t.Fatalf("NewAM: %v", err)
	}
	if got, _ := am.CanonicalName(); got != "0f0f0f.amss.am.radiodns.org" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestNewDAB_Refinements(t *testing.T) {
	xpad, err := NewDABWithXPAD("0CE", "C185", "D203", "0", "0D-C0A")
	if err != nil {
		t.Fatalf("NewDABWithXPAD: %v", err)
	}
	if got, _ := xpad.CanonicalName(); got != "0d-c0a.0.d203.c185.0ce.dab.radiodns.org" {
		t.Fatalf("unexpected xpad name %q", got)
	}
	if _, ok := xpad.PacketAddress(); ok {
		t.Fatalf("expected no packet address on xpad identity")
	}

	pa, err := NewDABWithPacketAddress("0ce", "c185", "d2031234", "00a", 17)
	if err != nil {
		t.Fatalf("NewDABWithPacketAddress: %v", err)
	}
	if got, _ := pa.CanonicalName(); got != "17.00a.d2031234.c185.0ce.dab.radiodns.org" {
		t.Fatalf("unexpected packet address name %q", got)
	}
	if _, ok := pa.XPAD(); ok {
		t.Fatalf("expected no xpad on packet address identity")
	}

	base, err := NewDAB("0ce", "c185", "d203", "0")
	if err != nil {
		t.Fatalf("NewDAB: %v", err)
	}
	if _, ok := base.XPAD(); ok {
		t.Fatalf("expected no xpad on base identity")
	}
	if _, ok := base.PacketAddress(); ok {
		t.Fatalf("expected no packet address on base identity")
	}
}

func TestNewDAB_Validation(t *testing.T) {
	cases := []struct {
		name    string
		build   func() (*DAB, error)
		field   string
		missing bool
	}{
		{"missing gcc", func() (*DAB, error) { return NewDAB("", "c185", "d203", "0") }, "gcc", true},
		{"missing scids", func() (*DAB, error) { return NewDAB("0ce", "c185", "d203", "") }, "scids", true},
		{"bad gcc", func() (*DAB, error) { return NewDAB("0c", "c185", "d203", "0") }, "gcc", false},
		{"bad eid", func() (*DAB, error) { return NewDAB("0ce", "c18", "d203", "0") }, "eid", false},
		{"six digit sid", func() (*DAB, error) { return NewDAB("0ce", "c185", "d20312", "0") }, "sid", false},
		{"two digit scids", func() (*DAB, error) { return NewDAB("0ce", "c185", "d203", "00") }, "scids", false},
		{"missing xpad", func() (*DAB, error) { return NewDABWithXPAD("0ce", "c185", "d203", "0", "") }, "xpad", true},
		{"missing before malformed xpad", func() (*DAB, error) { return NewDABWithXPAD("xx", "c185", "d203", "0", "") }, "xpad", true},
		{"bad xpad", func() (*DAB, error) { return NewDABWithXPAD("0ce", "c185", "d203", "0", "0dc0a") }, "xpad", false},
		{"zero pa", func() (*DAB, error) { return NewDABWithPacketAddress("0ce", "c185", "d203", "0", 0) }, "pa", false},
		{"max pa", func() (*DAB, error) { return NewDABWithPacketAddress("0ce", "c185", "d203", "0", 1023) }, "pa", false},
		{"base checked first", func() (*DAB, error) { return NewDABWithPacketAddress("0ce", "zzzz", "d203", "0", 0) }, "eid", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dab, err := tc.build()
			if dab != nil {
				t.Fatalf("expected nil instance")
			}
			assertValidationError(t, err, tc.field, tc.missing)
		})
	}
}

func TestNewHD_Validation(t *testing.T) {
	if hd, err := NewHD("0A0", "1234"); hd != nil || err == nil {
		t.Fatalf("expected short tx to fail")
	} else {
		assertValidationError(t, err, "tx", false)
	}
	if _, err := NewHD("", ""); err == nil {
		t.Fatalf("expected missing values to fail")
	} else {
		assertValidationError(t, err, "cc", true)
	}
}

func TestNewIP_Validation(t *testing.T) {
	if _, err := NewIP(""); err == nil {
		t.Fatalf("expected missing domain to fail")
	} else {
		assertValidationError(t, err, "domain", true)
	}
	if _, err := NewIP("a..b"); err == nil {
		t.Fatalf("expected malformed domain to fail")
	} else {
		assertValidationError(t, err, "domain", false)
	}
}

func TestParseBand(t *testing.T) {
	if b, ok := ParseBand(" DAB "); !ok || b != BandDAB {
		t.Fatalf("expected dab, got %q ok=%v", b, ok)
	}
	if _, ok := ParseBand("lw"); ok {
		t.Fatalf("expected unknown band to be rejected")
	}
}

func assertValidationError(t *testing.T, err error, field string, missing bool) {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	if verr.Field != field {
		t.Fatalf("expected field %q, got %q (%v)", field, verr.Field, err)
	}
	if verr.Missing != missing {
		t.Fatalf("expected missing=%v, got %v (%v)", missing, verr.Missing, err)
	}
	want := ErrInvalidField
	if missing {
		want = ErrMissingField
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected errors.Is(%v), got %v", want, err)
	}
}
