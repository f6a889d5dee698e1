package esplora

import "errors"

var (
	// ErrNotFound means the explorer answered 404. From the client side
	// this is indistinguishable from "entity temporarily unavailable";
	// callers must treat it as "could not analyze", never as proof of
	// absence.
	ErrNotFound = errors.New("esplora: not found")

	// ErrMalformed means the response body did not decode as the expected
	// structure. Terminal for the call; never retried.
	ErrMalformed = errors.New("esplora: malformed response")

	// ErrUnavailable means retries were exhausted against transport or
	// server failures. The failed request is not cached, so a later call
	// retries against a live network.
	ErrUnavailable = errors.New("esplora: upstream unavailable")
)
