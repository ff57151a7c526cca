package broadcast

import (
	"fmt"
	"regexp"
	"strconv"
)

const (
	minPacketAddress = 0
	maxPacketAddress = 1023
)

var (
	dabGCCPattern   = hexPattern("3")
	dabEIDPattern   = hexPattern("4")
	dabSIDPattern   = hexPattern("4", "8")
	dabSCIDSPattern = hexPattern("1", "3")
	xpadPattern     = regexp.MustCompile(`(?i)^[0-9a-f]{2}-[0-9a-f]{3}$`)
)

// DAB identifies a DAB/DAB+ service component, optionally refined by an
// X-PAD application type or a packet address (never both).
type DAB struct {
	gcc   string
	eid   string
	sid   string
	scids string

	xpad          string
	packetAddress int
	hasPA         bool
}

func NewDAB(gcc, eid, sid, scids string) (*DAB, error) {
	return newDAB(gcc, eid, sid, scids)
}

// NewDABWithXPAD adds the X-PAD AppTy/UAtype refinement, formatted "HH-HHH".
func NewDABWithXPAD(gcc, eid, sid, scids, xpad string) (*DAB, error) {
	if err := requireFields(BandDAB,
		field{"gcc", gcc},
		field{"eid", eid},
		field{"sid", sid},
		field{"scids", scids},
		field{"xpad", xpad},
	); err != nil {
		return nil, err
	}
	s, err := newDAB(gcc, eid, sid, scids)
	if err != nil {
		return nil, err
	}
	if !xpadPattern.MatchString(xpad) {
		return nil, invalid(BandDAB, "xpad", xpad,
			"an X-PAD application type of the form HH-HHH (hexadecimal)")
	}
	s.xpad = xpad
	return s, nil
}

// NewDABWithPacketAddress adds the packet-mode address refinement.
func NewDABWithPacketAddress(gcc, eid, sid, scids string, packetAddress int) (*DAB, error) {
	s, err := newDAB(gcc, eid, sid, scids)
	if err != nil {
		return nil, err
	}
	if packetAddress <= minPacketAddress || packetAddress >= maxPacketAddress {
		return nil, invalid(BandDAB, "pa", strconv.Itoa(packetAddress),
			fmt.Sprintf("a packet address integer greater than %d and less than %d", minPacketAddress, maxPacketAddress))
	}
	s.packetAddress = packetAddress
	s.hasPA = true
	return s, nil
}

func newDAB(gcc, eid, sid, scids string) (*DAB, error) {
	if err := requireFields(BandDAB,
		field{"gcc", gcc},
		field{"eid", eid},
		field{"sid", sid},
		field{"scids", scids},
	); err != nil {
		return nil, err
	}
	if !dabGCCPattern.MatchString(gcc) {
		return nil, invalid(BandDAB, "gcc", gcc, "a 3-character hexadecimal global country code")
	}
	if !dabEIDPattern.MatchString(eid) {
		return nil, invalid(BandDAB, "eid", eid, "a 4-character hexadecimal ensemble identifier")
	}
	if !dabSIDPattern.MatchString(sid) {
		return nil, invalid(BandDAB, "sid", sid, "a 4 or 8-character hexadecimal service identifier")
	}
	if !dabSCIDSPattern.MatchString(scids) {
		return nil, invalid(BandDAB, "scids", scids, "a 1 or 3-character hexadecimal service component identifier")
	}
	return &DAB{gcc: gcc, eid: eid, sid: sid, scids: scids}, nil
}

func (*DAB) Band() Band { return BandDAB }

func (s *DAB) GCC() string { return s.gcc }

func (s *DAB) EID() string { return s.eid }

func (s *DAB) SID() string { return s.sid }

func (s *DAB) SCIdS() string { return s.scids }

func (s *DAB) XPAD() (string, bool) { return s.xpad, s.xpad != "" }

func (s *DAB) PacketAddress() (int, bool) { return s.packetAddress, s.hasPA }

func (s *DAB) CanonicalName() (string, bool) {
	if s == nil {
		return "", false
	}
	labels := make([]string, 0, 5)
	switch {
	case s.xpad != "":
		labels = append(labels, s.xpad)
	case s.hasPA:
		labels = append(labels, strconv.Itoa(s.packetAddress))
	}
	labels = append(labels, s.scids, s.sid, s.eid, s.gcc)
	return joinLabels(BandDAB, labels...), true
}

func (*DAB) sealed() {}
