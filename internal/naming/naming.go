package naming

import "strings"

// NormalizeHost lower-cases a host name taken from a DNS answer and strips
// the root label. ok is false for the empty name and for the root itself,
// which an SRV record uses to say the service is not offered.
func NormalizeHost(raw string) (host string, ok bool) {
	name := strings.TrimSpace(raw)
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return "", false
	}
	return strings.ToLower(name), true
}

// LooksHostname reports whether every label is made of letters, digits,
// hyphens or underscores.
func LooksHostname(value string) bool {
	if value == "" {
		return false
	}
	for _, label := range strings.Split(value, ".") {
		if !looksHostnameLabel(label) {
			return false
		}
	}
	return true
}

func looksHostnameLabel(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
