package server

import (
	"context"
	"errors"

	"github.com/jonathan/oracle/internal/matcher"
	"github.com/jonathan/oracle/internal/validation"
)

// userMessage returns the client-facing message for a pipeline error. Raw
// error text stays in the server logs; the search API contract is 200/400/500
// so every pipeline failure surfaces as a 500 with one of these messages.
func userMessage(err error) string {
	var parseErr *matcher.ParseError
	var malformed *validation.MalformedResponseError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Search timed out. Please try again."
	case errors.As(err, &parseErr), errors.As(err, &malformed):
		return "Failed to parse AI recommendations. Please try again."
	default:
		return "Failed to search for content. Please try again."
	}
}
