package broadcast

const (
	AMSystemDRM  = "drm"
	AMSystemAMSS = "amss"
)

var amSIDPattern = hexPattern("6")

// AM identifies a DRM or AMSS service.
type AM struct {
	system string
	sid    string
}

func NewAM(system, sid string) (*AM, error) {
	if err := requireFields(BandAM,
		field{"system", system},
		field{"sid", sid},
	); err != nil {
		return nil, err
	}

	switch system {
	case AMSystemDRM, AMSystemAMSS:
	default:
		return nil, invalid(BandAM, "system", system,
			`either "drm" (Digital Radio Mondiale) or "amss" (AM Signalling System)`)
	}

	if !amSIDPattern.MatchString(sid) {
		return nil, invalid(BandAM, "sid", sid, "a 6-character hexadecimal service identifier")
	}

	return &AM{system: system, sid: sid}, nil
}

func (*AM) Band() Band { return BandAM }

func (s *AM) System() string { return s.system }

func (s *AM) SID() string { return s.sid }

func (s *AM) CanonicalName() (string, bool) {
	if s == nil {
		return "", false
	}
	return joinLabels(BandAM, s.sid, s.system), true
}

func (*AM) sealed() {}
