package core

// # Error Codes Reference
//
// This file maps technical errors to user-friendly messages with codes for
// support reference. When an admin reports a failed load or save, the code
// points straight at the failure class.
//
// # Submission Errors (SUB001-SUB099)
//
//	SUB001 - Already saving: the same form was submitted twice
//	         Action: Wait for the previous save to finish
//	         Patterns: "submission already in progress"
//
// # Form Errors (FORM001-FORM099)
//
//	FORM001 - Invalid form: required fields missing or not numeric
//	          Action: Check the highlighted fields and submit again
//	          Patterns: "invalid form"
//
//	FORM002 - Invalid page size
//	          Action: Choose one of the listed page sizes
//	          Patterns: "invalid page size"
//
//	FORM003 - Unknown sort column or direction
//	          Action: Sort by title or price, asc or desc
//	          Patterns: "unknown sort field", "unknown sort direction"
//
//	FORM004 - Unknown command
//	          Action: Check the command kind
//	          Patterns: "unknown command"
//
//	FORM005 - Malformed request: bad JSON body or non-numeric id
//	          Action: Check the request body and parameters
//	          Patterns: "malformed request"
//
// # Catalog Errors (CAT001-CAT099)
//
//	CAT001 - Product not found in the loaded catalog
//	         Action: Reload the catalog; the product may have been removed
//	         Patterns: "product not found"
//
//	CAT002 - Nothing to export on the current page
//	         Action: Change the search or go to a page with products
//	         Patterns: "nothing to export"
//
// # Remote API Errors (VAL, PARSE, NET)
//
//	VAL001   - The catalog API rejected the product
//	           Action: Check the category id, price and image URLs
//	           Patterns: "validation failure"
//
//	PARSE001 - The catalog API returned an unexpected response
//	           Action: Try again later
//	           Patterns: "parse failure"
//
//	NET002   - Catalog API unreachable
//	           Patterns: "connection refused", "no such host"
//
//	NET003   - Catalog API did not answer in time
//	           Patterns: "context deadline exceeded", "timeout"
//
//	NET004   - Request was cancelled
//	           Patterns: "context canceled"
//
//	NET001   - Any other transport failure or non-success status
//	           Patterns: "network failure"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the application logs for the
// original technical error.
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"`          // What happened (user-friendly)
	Action  string `json:"action,omitempty"` // What to do about it
	Code    string `json:"code"`             // Error code for support reference
	Detail  string `json:"detail,omitempty"` // Server-provided message, if any
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// Local errors (SUB, FORM, CAT)
	// =========================================================================
	{
		pattern: "submission already in progress",
		msg: UserMessage{
			Message: "This form is already being saved",
			Action:  "Wait for the previous save to finish",
			Code:    "SUB001",
		},
	},
	{
		pattern: "invalid form",
		msg: UserMessage{
			Message: "Some fields are missing or invalid",
			Action:  "Check the highlighted fields and submit again",
			Code:    "FORM001",
		},
	},
	{
		pattern: "invalid page size",
		msg: UserMessage{
			Message: "That page size is not available",
			Action:  "Choose one of the listed page sizes",
			Code:    "FORM002",
		},
	},
	{
		pattern: "unknown sort field",
		msg: UserMessage{
			Message: "That column cannot be sorted",
			Action:  "Sort by title or price",
			Code:    "FORM003",
		},
	},
	{
		pattern: "unknown sort direction",
		msg: UserMessage{
			Message: "That sort direction is not supported",
			Action:  "Use asc or desc",
			Code:    "FORM003",
		},
	},
	{
		pattern: "unknown command",
		msg: UserMessage{
			Message: "That action is not supported",
			Action:  "Check the command kind",
			Code:    "FORM004",
		},
	},
	{
		pattern: "malformed request",
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Check the request body and parameters",
			Code:    "FORM005",
		},
	},
	{
		pattern: "product not found",
		msg: UserMessage{
			Message: "Product not found",
			Action:  "Reload the catalog; the product may have been removed",
			Code:    "CAT001",
		},
	},
	{
		pattern: "nothing to export",
		msg: UserMessage{
			Message: "There is no data to export",
			Action:  "Change the search or go to a page with products",
			Code:    "CAT002",
		},
	},

	// =========================================================================
	// Remote API errors
	// Transport specifics come before the generic "network failure" kind.
	// =========================================================================
	{
		pattern: "validation failure",
		msg: UserMessage{
			Message: "The catalog rejected the product",
			Action:  "Check the category id, price and image URLs",
			Code:    "VAL001",
		},
	},
	{
		pattern: "parse failure",
		msg: UserMessage{
			Message: "The catalog returned an unexpected response",
			Action:  "Try again later",
			Code:    "PARSE001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the catalog service",
			Action:  "Check your connection and try again",
			Code:    "NET002",
		},
	},
	{
		pattern: "no such host",
		msg: UserMessage{
			Message: "Unable to reach the catalog service",
			Action:  "Check the configured catalog URL",
			Code:    "NET002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The catalog service did not respond in time",
			Action:  "Please try again in a few moments",
			Code:    "NET003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The catalog service did not respond in time",
			Action:  "Please try again in a few moments",
			Code:    "NET003",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "NET004",
		},
	},
	{
		pattern: "network failure",
		msg: UserMessage{
			Message: "Could not communicate with the catalog service",
			Action:  "Check your connection and try again",
			Code:    "NET001",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// The first matching pattern wins; unknown errors map to ERR000.
// When err carries a message from the catalog API it is kept in Detail.
//
// Example:
//
//	msg := MapError(err)
//	// msg.Code == "VAL001"
//	// msg.Detail == "categoryId must be a positive number"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	msg := defaultMessage
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			msg = ep.msg
			break
		}
	}

	msg.Detail = catalog.MessageOf(err)
	return msg
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action", with the server detail
// appended when present.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	s := fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
	if msg.Detail != "" {
		s += ": " + msg.Detail
	}
	return s
}

// IsUserFacing reports whether err matches a known pattern (not ERR000).
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
// The original error is preserved for logging while providing a clean
// message for display.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
