package oicp

import "errors"

var (
	// ErrFetch covers network failures, timeouts and non-2xx responses.
	ErrFetch = errors.New("feed fetch failed")
	// ErrParse covers undecodable response bodies.
	ErrParse = errors.New("feed parse failed")
	// ErrSchema means an expected top-level collection is absent.
	ErrSchema = errors.New("unexpected feed document shape")
	// ErrMalformedTimestamp means lastUpdate was present but unparseable.
	ErrMalformedTimestamp = errors.New("malformed lastUpdate timestamp")
)
