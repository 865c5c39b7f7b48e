// Package ipaddr classifies visitor addresses and produces the
// privacy-masked form stored alongside every visit.
package ipaddr

import (
	"net/netip"
	"strings"
)

const maskedOctets = "xxx.xxx"

// FullyMasked is returned for anything that is not a well-formed
// dotted-quad address.
const FullyMasked = "xxx.xxx.xxx.xxx"

// ClassifyAndMask reports whether rawIP is publicly routable (and
// therefore worth geolocating) and returns its masked display form.
// Masking is total: malformed input yields FullyMasked.
func ClassifyAndMask(rawIP string) (routable bool, masked string) {
	return IsRoutable(rawIP), Mask(rawIP)
}

// IsRoutable reports whether rawIP parses as an IP address outside the
// loopback, private (RFC 1918 / ULA), link-local and unspecified
// ranges. Unparseable input is never routable.
func IsRoutable(rawIP string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(rawIP))
	if err != nil {
		return false
	}
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() {
		return false
	}
	if addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() {
		return false
	}
	return true
}

// Mask keeps the first two octets of a dotted-quad address and masks
// the rest: "203.0.113.7" -> "203.0.xxx.xxx". Anything else (IPv6,
// garbage, empty) collapses to FullyMasked.
func Mask(rawIP string) string {
	parts := strings.Split(strings.TrimSpace(rawIP), ".")
	if len(parts) != 4 {
		return FullyMasked
	}
	for _, p := range parts {
		if !isOctet(p) {
			return FullyMasked
		}
	}
	return parts[0] + "." + parts[1] + "." + maskedOctets
}

func isOctet(s string) bool {
	if len(s) == 0 || len(s) > 3 {
		return false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
		n = n*10 + int(c-'0')
	}
	return n <= 255
}
