package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. The dashboard never fails on bad data; these codes cover the
// failures around it: reaching the backend and resolving pages and tables.
//
// # Backend Errors (API001-API099)
//
//	API001 - Backend unreachable: Unable to reach the backend service
//	         Action: Check the API base URL in Settings
//	         Patterns: "connection refused", "no such host"
//
//	API002 - Timeout: The backend took too long to respond
//	         Action: Please try again in a few moments
//	         Patterns: "context deadline exceeded", "timeout"
//
//	API003 - Not found: The backend does not provide this resource
//	         Action: Verify the backend version matches the dashboard
//	         Patterns: "http 404"
//
//	API004 - Server error: The backend reported an internal error
//	         Action: Please try again; contact the backend team if it persists
//	         Patterns: "http 5"
//
//	API005 - Bad response: The backend returned data that could not be read
//	         Action: Verify the API base URL points at the backend, not a web page
//	         Patterns: "decode response", "invalid character"
//
//	API006 - Request cancelled: The request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
// # View Errors (VIEW001-VIEW099)
//
//	VIEW001 - Page not found: The requested page does not exist
//	VIEW002 - Table not found: The requested table does not exist
//
// # Settings Errors (SET001-SET099)
//
//	SET001 - Invalid URL: The API base URL is not a valid http(s) URL
//	         Patterns: "invalid base url", "unsupported protocol scheme"
//
//	SET002 - URL not allowed: The API base URL is not an approved backend
//	         Action: Ask an administrator to add it to API_ALLOWED_BASE_URLS
//	         Patterns: "base url not allowed"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so specific patterns come first.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgUnreachable = UserMessage{
		Message: "Unable to reach the backend service",
		Action:  "Check the API base URL in Settings",
		Code:    "API001",
	}
	msgTimeout = UserMessage{
		Message: "The backend took too long to respond",
		Action:  "Please try again in a few moments",
		Code:    "API002",
	}
	msgBadResponse = UserMessage{
		Message: "The backend returned data that could not be read",
		Action:  "Verify the API base URL points at the backend, not a web page",
		Code:    "API005",
	}
	msgInvalidURL = UserMessage{
		Message: "The API base URL is not a valid http(s) URL",
		Action:  "Enter a URL such as http://localhost:8000",
		Code:    "SET001",
	}
)

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
var errorPatterns = []errorPattern{
	// Settings come first: a bad scheme also surfaces as a transport error.
	{pattern: "invalid base url", msg: msgInvalidURL},
	{pattern: "unsupported protocol scheme", msg: msgInvalidURL},
	{
		pattern: "base url not allowed",
		msg: UserMessage{
			Message: "The API base URL is not an approved backend",
			Action:  "Ask an administrator to add it to API_ALLOWED_BASE_URLS",
			Code:    "SET002",
		},
	},

	{pattern: "connection refused", msg: msgUnreachable},
	{pattern: "no such host", msg: msgUnreachable},
	{pattern: "context deadline exceeded", msg: msgTimeout},
	{pattern: "timeout", msg: msgTimeout},
	{
		pattern: "http 404",
		msg: UserMessage{
			Message: "The backend does not provide this resource",
			Action:  "Verify the backend version matches the dashboard",
			Code:    "API003",
		},
	},
	{
		pattern: "http 5",
		msg: UserMessage{
			Message: "The backend reported an internal error",
			Action:  "Please try again; contact the backend team if it persists",
			Code:    "API004",
		},
	},
	{pattern: "decode response", msg: msgBadResponse},
	{pattern: "invalid character", msg: msgBadResponse},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "API006",
		},
	},

	{
		pattern: "page not found",
		msg: UserMessage{
			Message: "The requested page does not exist",
			Action:  "Use the sidebar to pick a page",
			Code:    "VIEW001",
		},
	},
	{
		pattern: "view not found",
		msg: UserMessage{
			Message: "The requested table does not exist",
			Action:  "Reload the page to refresh the table list",
			Code:    "VIEW002",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the server logs",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, a generic fallback with code ERR000 is returned.
//
// Example:
//
//	err := errors.New(`Get "http://api/complaints": dial tcp: connection refused`)
//	msg := MapError(err)
//	// msg.Code == "API001"
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

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a specific pattern rather than
// the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
