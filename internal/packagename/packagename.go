// SPDX-License-Identifier: MPL-2.0

package packagename

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

const (
	// DefaultName replaces a name that sanitizes to the empty string.
	DefaultName = "MyHostedWebApp"

	// fallbackSuffix completes a single-label host into a two-segment identifier.
	fallbackSuffix = "app"
)

// ErrInvalidStartURL is returned when a start URL has no usable host.
var ErrInvalidStartURL = errors.New("invalid start URL")

// reservedSegments maps identifier segments rejected by the Android package
// grammar to their replacement. Only exact segment matches are rewritten.
var reservedSegments = map[string]string{
	"in": "ind",
}

// Derive builds a reverse-domain identifier from the host of startURL:
// www.example.com becomes com.example.www. Each host label is sanitized
// first; reserved segments are then rewritten and a single remaining
// segment gets fallbackSuffix appended. Hosts without any usable label,
// such as IP addresses, are rejected.
func Derive(startURL string) (string, error) {
	u, err := url.Parse(startURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidStartURL, err)
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrInvalidStartURL, startURL)
	}

	var segments []string
	for label := range strings.SplitSeq(strings.ToLower(host), ".") {
		seg := sanitizeSegment(label)
		if seg == "" {
			continue
		}
		if repl, ok := reservedSegments[seg]; ok {
			seg = repl
		}
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: host %q yields no identifier", ErrInvalidStartURL, host)
	}
	slices.Reverse(segments)
	if len(segments) == 1 {
		segments = append(segments, fallbackSuffix)
	}
	return strings.Join(segments, "."), nil
}

// sanitizeSegment keeps the ASCII letters and digits of one label and drops
// its leading digits.
func sanitizeSegment(label string) string {
	var b strings.Builder
	for _, r := range label {
		if isASCIILetter(r) || isASCIIDigit(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimLeftFunc(b.String(), isASCIIDigit)
}

// SanitizeName restricts name to ASCII letters, digits and dots, drops
// digits at the start of each dot-separated segment, and removes empty
// segments. An empty result becomes DefaultName.
func SanitizeName(name string) string {
	var segments []string
	for seg := range strings.SplitSeq(name, ".") {
		if seg = sanitizeSegment(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return DefaultName
	}
	return strings.Join(segments, ".")
}

// AppName picks the application name from a manifest's short name, falling
// back to its full name, and sanitizes it.
func AppName(shortName, name string) string {
	if strings.TrimSpace(shortName) != "" {
		return SanitizeName(shortName)
	}
	return SanitizeName(name)
}

func isASCIILetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
