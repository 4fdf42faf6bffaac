package llm

import "errors"

var (
	// ErrUnavailable indicates the LLM API endpoint is unreachable.
	ErrUnavailable = errors.New("llm api unavailable")

	// ErrUnauthorized indicates the API rejected the configured key.
	ErrUnauthorized = errors.New("llm api key rejected")

	// ErrRateLimited indicates the API throttled the request.
	ErrRateLimited = errors.New("llm api rate limited")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
