package ai

import "errors"

var (
	// ErrEmptyResponse indicates the endpoint returned no choices.
	ErrEmptyResponse = errors.New("inference endpoint returned no choices")
)
