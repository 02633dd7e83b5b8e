package domain

import "errors"

var (
	// ErrLinkNotFound means no active link matches the slug. Not a failure:
	// the handler answers with the home fallback redirect.
	ErrLinkNotFound = errors.New("affiliate link not found")

	// ErrStoreUnavailable means the link store could not be queried (transport
	// failure or non-2xx status). Maps to a 502 response.
	ErrStoreUnavailable = errors.New("link store unavailable")
)
