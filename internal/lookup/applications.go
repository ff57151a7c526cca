package lookup

import (
	"fmt"
	"strings"
)

// ApplicationID is the service name used in the application SRV query.
type ApplicationID string

const (
	RadioEPG     ApplicationID = "radioepg"
	RadioTAG     ApplicationID = "radiotag"
	RadioVIS     ApplicationID = "radiovis"
	RadioVISHTTP ApplicationID = "radiovis-http"
)

var knownApplications = []ApplicationID{
	RadioEPG,
	RadioTAG,
	RadioVIS,
	RadioVISHTTP,
}

func KnownApplications() []ApplicationID {
	out := make([]ApplicationID, len(knownApplications))
	copy(out, knownApplications)
	return out
}

func IsKnownApplication(id ApplicationID) bool {
	id = NormalizeApplicationID(string(id))
	for _, known := range knownApplications {
		if known == id {
			return true
		}
	}
	return false
}

func NormalizeApplicationID(raw string) ApplicationID {
	return ApplicationID(strings.ToLower(strings.TrimSpace(raw)))
}

// ParseApplicationID accepts only the known application tokens.
func ParseApplicationID(raw string) (ApplicationID, error) {
	id := NormalizeApplicationID(raw)
	if !IsKnownApplication(id) {
		return "", fmt.Errorf("unknown application %q", raw)
	}
	return id, nil
}
