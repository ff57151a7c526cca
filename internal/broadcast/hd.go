package broadcast

var (
	hdCCPattern = hexPattern("3")
	hdTxPattern = hexPattern("5")
)

// HD identifies an HD Radio station by country code and transmitter id.
type HD struct {
	cc string
	tx string
}

func NewHD(cc, tx string) (*HD, error) {
	if err := requireFields(BandHD,
		field{"cc", cc},
		field{"tx", tx},
	); err != nil {
		return nil, err
	}
	if !hdCCPattern.MatchString(cc) {
		return nil, invalid(BandHD, "cc", cc, "a 3-character hexadecimal country code")
	}
	if !hdTxPattern.MatchString(tx) {
		return nil, invalid(BandHD, "tx", tx, "a 5-character hexadecimal transmitter identifier")
	}
	return &HD{cc: cc, tx: tx}, nil
}

func (*HD) Band() Band { return BandHD }

func (s *HD) CountryCode() string { return s.cc }

func (s *HD) TransmitterID() string { return s.tx }

func (s *HD) CanonicalName() (string, bool) {
	if s == nil {
		return "", false
	}
	return joinLabels(BandHD, s.tx, s.cc), true
}

func (*HD) sealed() {}
