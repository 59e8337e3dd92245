package fetcher

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned when a URL cannot be normalized into
// something fetchable. This is a user-correctable validation error
// and maps to HTTP 400 at the API boundary.
var ErrInvalidURL = errors.New("invalid URL")

// NormalizeURL turns user input into a fetchable absolute URL.
// Bare domains are accepted by assuming an https:// prefix; explicit
// http:// is preserved so the rule engine can flag it.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidURL
	}

	// A host with no dot and no port is almost certainly a typo
	// ("pizza" instead of "pizza.com"); reject it early rather than
	// burning a 15 second fetch on it. "localhost" stays allowed for
	// local testing.
	host := u.Hostname()
	if host == "" {
		return "", ErrInvalidURL
	}
	if !strings.Contains(host, ".") && host != "localhost" {
		return "", ErrInvalidURL
	}

	return u.String(), nil
}
