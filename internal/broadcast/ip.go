package broadcast

import "github.com/miekg/dns"

// IP identifies a stream-delivered service whose authoritative domain is
// already known, so no canonical name is derived for it.
type IP struct {
	domain string
}

func NewIP(authoritativeDomain string) (*IP, error) {
	if err := requireFields(BandIP, field{"domain", authoritativeDomain}); err != nil {
		return nil, err
	}
	if _, ok := dns.IsDomainName(authoritativeDomain); !ok {
		return nil, invalid(BandIP, "domain", authoritativeDomain, "a valid domain name")
	}
	return &IP{domain: authoritativeDomain}, nil
}

func (*IP) Band() Band { return BandIP }

// AuthoritativeDomain returns the domain exactly as supplied, or "" for a nil
// identity.
func (s *IP) AuthoritativeDomain() string {
	if s == nil {
		return ""
	}
	return s.domain
}

func (*IP) CanonicalName() (string, bool) { return "", false }

func (*IP) sealed() {}
