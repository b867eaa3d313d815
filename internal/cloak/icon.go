package cloak

import (
	"fmt"
	"net/url"
	"regexp"
)

// DefaultFaviconService resolves a host name to its favicon.
const DefaultFaviconService = "https://icons.duckduckgo.com/ip3/%s.ico"

var (
	schemePattern = regexp.MustCompile(`(?i)^https?://`)
	iconPattern   = regexp.MustCompile(`(?i)\.(ico|png|svg)$`)
)

// NormalizeURL prefixes https:// unless raw already carries an http(s) scheme.
func NormalizeURL(raw string) string {
	if schemePattern.MatchString(raw) {
		return raw
	}
	return "https://" + raw
}

// IconHref turns a user-entered icon value into the href for the page icon.
// Direct image URLs are used as-is; anything else is treated as a site and
// resolved through service, a fmt template taking the host name. A value
// without a usable host is returned normalised.
func IconHref(raw, service string) string {
	if service == "" {
		service = DefaultFaviconService
	}

	normalized := NormalizeURL(raw)
	if iconPattern.MatchString(normalized) {
		return normalized
	}

	u, err := url.Parse(normalized)
	if err != nil || u.Hostname() == "" {
		return normalized
	}
	return fmt.Sprintf(service, u.Hostname())
}
