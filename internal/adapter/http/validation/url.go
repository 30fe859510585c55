// Package validation checks client-supplied input before it reaches the
// queue.
package validation

import (
	"errors"
	"net/url"
	"strings"
)

var (
	ErrEmptyURL     = errors.New("video_url is required")
	ErrMalformedURL = errors.New("video_url is not a valid URL")
	ErrBadScheme    = errors.New("video_url must use http or https")
)

// VideoURL validates a submitted video URL and returns its normalized form.
func VideoURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrMalformedURL
	}

	switch u.Scheme {
	case "http", "https":
	default:
		return "", ErrBadScheme
	}

	if u.Host == "" {
		return "", ErrMalformedURL
	}

	return u.String(), nil
}
