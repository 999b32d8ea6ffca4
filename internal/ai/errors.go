package ai

import "errors"

var (
	ErrUnavailable   = errors.New("ai provider unavailable")
	ErrEmptyResponse = errors.New("ai provider returned empty response")
)
