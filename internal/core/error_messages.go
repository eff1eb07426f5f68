// # Error Codes Reference
//
// User-facing errors carry a short code so a report can be matched to the
// cause in the logs.
//
// # Dataset Errors (DATA001-DATA099)
//
//	DATA001 - Missing column: a required spreadsheet or table column is absent
//	DATA002 - Invalid number: a numeric cell could not be parsed
//	DATA003 - Empty sheet: the sheet has no header row
//	DATA004 - File not found: the configured workbook does not exist
//	DATA005 - Database unavailable: the PostgreSQL source refused the connection
//
// # Selection Errors (SEL001-SEL099)
//
//	SEL001 - Unknown country
//	SEL002 - Year out of range
//	SEL003 - Unknown migration variable
//	SEL004 - Malformed selection request
//
// # Chart Errors (CHT001-CHT099)
//
//	CHT001 - Unknown chart panel
//	CHT002 - Chart cannot be drawn as an image
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled
//	REQ002 - Request timed out
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the application logs for the
// technical error logged next to the request id.

package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/migdash/internal/chart"
	"github.com/JonMunkholm/migdash/internal/dataset"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern maps a sentinel error or a message fragment to a user message.
type errorPattern struct {
	target  error
	pattern string
	msg     UserMessage
}

func (p errorPattern) matches(err error, lower string) bool {
	if p.target != nil && errors.Is(err, p.target) {
		return true
	}
	return p.pattern != "" && strings.Contains(lower, p.pattern)
}

// errorPatterns is checked in order; the first match wins. Sentinels are
// compared with errors.Is, patterns case-insensitively with strings.Contains.
var errorPatterns = []errorPattern{
	// Dataset
	{
		target: dataset.ErrMissingColumn,
		msg: UserMessage{
			Message: "A required column is missing from the dataset",
			Action:  "Check the sheet headers against the expected column names",
			Code:    "DATA001",
		},
	},
	{
		target: dataset.ErrInvalidNumber,
		msg: UserMessage{
			Message: "The dataset contains a value that is not a number",
			Action:  "Fix the reported cell and restart the dashboard",
			Code:    "DATA002",
		},
	},
	{
		target: dataset.ErrEmptySheet,
		msg: UserMessage{
			Message: "The dataset sheet is empty",
			Action:  "Check the configured sheet name",
			Code:    "DATA003",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The dataset file was not found",
			Action:  "Check the configured workbook paths",
			Code:    "DATA004",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the database",
			Action:  "Please try again in a few moments",
			Code:    "DATA005",
		},
	},

	// Selection
	{
		target: ErrUnknownCountry,
		msg: UserMessage{
			Message: "Unknown country",
			Action:  "Pick a country from the list",
			Code:    "SEL001",
		},
	},
	{
		target: ErrYearOutOfRange,
		msg: UserMessage{
			Message: "Year is outside the available range",
			Action:  "Pick a year between 2008 and 2017",
			Code:    "SEL002",
		},
	},
	{
		target: ErrUnknownVariable,
		msg: UserMessage{
			Message: "Unknown migration variable",
			Action:  "Use Net-Migration, Migration Inflow or Migration Outflow",
			Code:    "SEL003",
		},
	},
	{
		target: ErrMalformedSelection,
		msg: UserMessage{
			Message: "The selection request could not be read",
			Action:  "Send country, year and variable as JSON or form fields",
			Code:    "SEL004",
		},
	},

	// Charts
	{
		target: ErrUnknownPanel,
		msg: UserMessage{
			Message: "Unknown chart",
			Action:  "Check the chart name in the address",
			Code:    "CHT001",
		},
	},
	{
		target: chart.ErrUnsupported,
		msg: UserMessage{
			Message: "This chart cannot be drawn as an image",
			Action:  "Use the interactive dashboard instead",
			Code:    "CHT002",
		},
	},

	// Request lifecycle
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},

	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// ErrMalformedSelection is returned when a selection request body or query
// cannot be decoded.
var ErrMalformedSelection = errors.New("malformed selection")

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. A nil
// error maps to the zero UserMessage.
//
//	msg := MapError(fmt.Errorf("load: %w", dataset.ErrMissingColumn))
//	// msg.Code == "DATA001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	lower := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if ep.matches(err, lower) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user message.
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
