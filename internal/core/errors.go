package core

// errors.go maps technical errors to user-friendly messages with codes for
// support reference. Patterns are matched case-insensitively with
// strings.Contains; the first match wins, so specific patterns come before
// general ones.
//
// Code ranges:
//
//	FILE001-FILE099  file handling and parsing
//	REQ001-REQ099    request handling and concurrency
//	RATE001          request throttling
//	ERR000           fallback when nothing matches

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRateLimited is returned when a client exceeds its per-IP request budget.
var ErrRateLimited = errors.New("rate limit exceeded")

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File errors: uploaded bytes could not be turned into a table.
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File could not be parsed as CSV",
			Action:  "Ensure the file is comma-separated text",
			Code:    "FILE002",
		},
	},
	{
		pattern: "missing header row",
		msg: UserMessage{
			Message: "File has no header row",
			Action:  "The first row must name the columns: id, email, age",
			Code:    "FILE003",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Upload a CSV file with a header and data rows",
			Code:    "FILE004",
		},
	},
	{
		pattern: "only csv uploads",
		msg: UserMessage{
			Message: "Only CSV uploads are supported",
			Action:  "Upload a file with a .csv extension",
			Code:    "FILE005",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Select a CSV file to validate",
			Code:    "FILE006",
		},
	},

	// Request errors: the service could not take the work right now.
	{
		pattern: "too many concurrent validations",
		msg: UserMessage{
			Message: "System is busy validating other files",
			Action:  "Wait a moment and try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "REQ003",
		},
	},

	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000). Support staff
// should check application logs for the original technical error.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. If no
// pattern matches, the generic ERR000 fallback is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error matches a known pattern (not the
// generic ERR000 fallback) and can be shown to users as-is.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
