package httpapi

import (
	"net/url"
	"strconv"
	"strings"

	"radiodns/core-go/internal/broadcast"
)

// identityFromQuery builds a broadcast identity from the query parameters of
// a lookup request.
func identityFromQuery(band broadcast.Band, q url.Values) (broadcast.Identity, error) {
	get := func(key string) string { return strings.TrimSpace(q.Get(key)) }

	switch band {
	case broadcast.BandFM:
		if err := requireParams(band, get, "country", "pi", "freq"); err != nil {
			return nil, err
		}
		freq, err := intParam(band, "freq", get("freq"))
		if err != nil {
			return nil, err
		}
		return identity(broadcast.NewFM(get("country"), get("pi"), freq))

	case broadcast.BandAM:
		return identity(broadcast.NewAM(get("system"), get("sid")))

	case broadcast.BandDAB:
		gcc, eid, sid, scids := get("gcc"), get("eid"), get("sid"), get("scids")
		xpad, pa := get("xpad"), get("pa")
		if err := requireParams(band, get, "gcc", "eid", "sid", "scids"); err != nil {
			return nil, err
		}
		switch {
		case xpad != "" && pa != "":
			return nil, &broadcast.ValidationError{
				Band:     band,
				Field:    "pa",
				Value:    pa,
				Expected: "omitted when xpad is supplied",
			}
		case xpad != "":
			return identity(broadcast.NewDABWithXPAD(gcc, eid, sid, scids, xpad))
		case pa != "":
			n, err := intParam(band, "pa", pa)
			if err != nil {
				return nil, err
			}
			return identity(broadcast.NewDABWithPacketAddress(gcc, eid, sid, scids, n))
		default:
			return identity(broadcast.NewDAB(gcc, eid, sid, scids))
		}

	case broadcast.BandHD:
		return identity(broadcast.NewHD(get("cc"), get("tx")))

	case broadcast.BandIP:
		return identity(broadcast.NewIP(get("domain")))
	}

	return nil, &broadcast.ValidationError{Band: band, Field: "band", Value: string(band), Expected: "one of fm, am, dab, hd, ip"}
}

// identity keeps a failed constructor's nil pointer out of the interface.
func identity[T broadcast.Identity](id T, err error) (broadcast.Identity, error) {
	if err != nil {
		return nil, err
	}
	return id, nil
}

// requireParams reports the first absent parameter so that missing values are
// reported ahead of malformed ones.
func requireParams(band broadcast.Band, get func(string) string, names ...string) error {
	for _, name := range names {
		if get(name) == "" {
			return &broadcast.ValidationError{Band: band, Field: name, Missing: true}
		}
	}
	return nil
}

func intParam(band broadcast.Band, name, raw string) (int, error) {
	if raw == "" {
		return 0, &broadcast.ValidationError{Band: band, Field: name, Missing: true}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &broadcast.ValidationError{Band: band, Field: name, Value: raw, Expected: "an integer"}
	}
	return n, nil
}
