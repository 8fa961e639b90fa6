package scrape

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Reserved ranges not covered by the net.IP helpers.
var (
	cgnat    *net.IPNet // 100.64.0.0/10
	v6unique *net.IPNet // fc00::/7
	v6link   *net.IPNet // fe80::/10
)

func init() {
	for _, cidr := range []struct {
		block string
		dst   **net.IPNet
	}{
		{"100.64.0.0/10", &cgnat},
		{"fc00::/7", &v6unique},
		{"fe80::/10", &v6link},
	} {
		_, parsed, err := net.ParseCIDR(cidr.block)
		if err != nil {
			panic("invalid reserved CIDR: " + err.Error())
		}
		*cidr.dst = parsed
	}
}

// ValidateURL rejects URLs the fetcher must not touch: non-HTTPS schemes,
// localhost variants, local domains and literal private IPs.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "https" {
		return fmt.Errorf("only HTTPS URLs are allowed")
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return fmt.Errorf("localhost URLs are not allowed")
	}
	if strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".internal") {
		return fmt.Errorf("local domain URLs are not allowed")
	}
	if ip := net.ParseIP(host); ip != nil && IsPrivateIP(ip) {
		return fmt.Errorf("private IP addresses are not allowed")
	}
	return nil
}

// IsPrivateIP reports whether ip falls in a private or reserved range,
// including IPv4-mapped IPv6 forms.
func IsPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}
	if v4 := ip.To4(); v4 != nil {
		ip = v4
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() {
			return true
		}
	}
	return cgnat.Contains(ip) || v6unique.Contains(ip) || v6link.Contains(ip)
}
