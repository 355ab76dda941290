package core

// Error Codes Reference
//
// Errors shown to users carry a short code they can quote when reporting
// a problem. Codes are grouped by category:
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds maximum size limit
//	          Patterns: "file too large", "request body too large"
//	FILE002 - Invalid CSV: Failed to parse CSV file
//	          Patterns: "invalid csv"
//	FILE004 - No file: No file was selected
//	          Patterns: "no file provided"
//	FILE005 - Empty file: The file has no header row
//	          Patterns: "empty file"
//	FILE006 - Invalid file type: Only .csv files are accepted
//	          Patterns: "invalid file type"
//
// # Sample Errors (SMP001-SMP099)
//
//	SMP001 - Sample unavailable: The sample file could not be fetched
//	         Patterns: "sample fetch failed"
//	SMP002 - Sample invalid: The sample file could not be parsed
//	         Patterns: "sample invalid csv"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: Too many uploads in progress
//	UPL004 - Request cancelled
//	UPL005 - Request timeout
//
// # Session and View Errors
//
//	SES001  - Session expired
//	VIEW001 - Unknown column
//	VIEW002 - Invalid page size
//	VIEW003 - Invalid chart item limit
//	VIEW004 - No dataset loaded
//
// # Rate Limiting (RATE001) and Default (ERR000)

import (
	"fmt"
	"strings"
)

// UserMessage represents a user-friendly error message with suggested action.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

// errorPattern maps a lowercase substring of an error to a message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is checked in order, so more specific patterns come first.
var errorPatterns = []errorPattern{
	// Sample errors precede file errors: a broken sample also reads "invalid csv".
	{
		pattern: "sample fetch failed",
		msg: UserMessage{
			Message: "Failed to fetch the sample file",
			Action:  "Please try again later or upload your own CSV file",
			Code:    "SMP001",
		},
	},
	{
		pattern: "sample invalid csv",
		msg: UserMessage{
			Message: "Failed to parse sample CSV file",
			Action:  "Please upload your own CSV file",
			Code:    "SMP002",
		},
	},

	{
		pattern: "invalid file type",
		msg: UserMessage{
			Message: "Please upload a CSV file",
			Action:  "Choose a file whose name ends in .csv",
			Code:    "FILE006",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "Failed to parse CSV file. Please check the format.",
			Action:  "Ensure file is comma-separated and every row has as many fields as the header",
			Code:    "FILE002",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file is empty",
			Action:  "Please upload a CSV file with a header row",
			Code:    "FILE005",
		},
	},

	{
		pattern: "too many uploads",
		msg: UserMessage{
			Message: "System is busy processing other uploads",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},

	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "Your session has expired",
			Action:  "Reload the page and load your file again",
			Code:    "SES001",
		},
	},
	{
		pattern: "unknown column",
		msg: UserMessage{
			Message: "That column does not exist in the current file",
			Action:  "Pick one of the listed columns",
			Code:    "VIEW001",
		},
	},
	{
		pattern: "invalid page size",
		msg: UserMessage{
			Message: "Invalid page size",
			Action:  "Choose one of the offered page sizes",
			Code:    "VIEW002",
		},
	},
	{
		pattern: "invalid chart item limit",
		msg: UserMessage{
			Message: "Invalid number of chart items",
			Action:  "Choose one of the offered limits",
			Code:    "VIEW003",
		},
	},
	{
		pattern: "no dataset ready",
		msg: UserMessage{
			Message: "No file is loaded",
			Action:  "Upload a CSV file or load the sample first",
			Code:    "VIEW004",
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

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches the known patterns case-insensitively and returns the first
// match, or the ERR000 fallback.
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

// IsUserFacing reports whether err matches a known pattern rather than
// falling back to ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error, kept for logging, with the message
// shown to the user.
type UserError struct {
	Technical error
	User      UserMessage
}

// Error reports the user message and code followed by the technical cause.
func (e *UserError) Error() string {
	return fmt.Sprintf("%s (Code: %s): %v", e.User.Message, e.User.Code, e.Technical)
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
