package services

import "errors"

// The three ways an analysis call can fail. All of them surface to the user
// as the same retry-worthy message; callers that care which one happened
// (logging, tests) use errors.Is.
var (
	// ErrAnalysisService wraps transport or upstream failures from the model API.
	ErrAnalysisService = errors.New("analysis service failure")
	// ErrEmptyResponse means the model returned no text at all.
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrMalformedResponse means the model returned text that is not valid
	// JSON for the analysis contract.
	ErrMalformedResponse = errors.New("malformed response from model")
)
