package errors

import "errors"

// ErrorCode classifies a failed command.
type ErrorCode string

const (
	CodeSourceNotFound  ErrorCode = "source_not_found"
	CodeMalformedSource ErrorCode = "malformed_source"
	CodeNotFound        ErrorCode = "not_found"
	CodeAmbiguous       ErrorCode = "ambiguous"
	CodeUsage           ErrorCode = "usage"
	CodeUnknown         ErrorCode = "unknown"
)

// ErrorCodeInfo contains metadata about an error code.
type ErrorCodeInfo struct {
	Code ErrorCode
	// Transient errors may succeed when the command is run again unchanged.
	Transient       bool
	Description     string
	SuggestedAction string
}

// ErrorCodeRegistry maps error codes to their metadata.
var ErrorCodeRegistry = map[ErrorCode]ErrorCodeInfo{
	CodeSourceNotFound: {
		Code:            CodeSourceNotFound,
		Description:     "Granola cache file does not exist",
		SuggestedAction: "Open Granola once so it writes its cache, or point to it with --cache or 'granola config set cache_path <path>'",
	},
	CodeMalformedSource: {
		Code:            CodeMalformedSource,
		Transient:       true,
		Description:     "Granola cache file could not be decoded",
		SuggestedAction: "Granola may be rewriting its cache; run the command again once syncing has finished",
	},
	CodeNotFound: {
		Code:            CodeNotFound,
		Description:     "No meeting has the given ID",
		SuggestedAction: "Find meeting IDs with 'granola list' or 'granola search <query>'",
	},
	CodeAmbiguous: {
		Code:            CodeAmbiguous,
		Description:     "The ID prefix matches several meetings",
		SuggestedAction: "Use more characters of the ID",
	},
	CodeUsage: {
		Code:        CodeUsage,
		Description: "A required argument is missing",
	},
}

// classified lists the sentinel behind each code, most specific first.
var classified = []struct {
	sentinel error
	code     ErrorCode
}{
	{ErrSourceNotFound, CodeSourceNotFound},
	{ErrMalformedSource, CodeMalformedSource},
	{ErrAmbiguous, CodeAmbiguous},
	{ErrNotFound, CodeNotFound},
	{ErrUsage, CodeUsage},
}

// Classify returns the code of the first known sentinel in err's chain,
// or CodeUnknown.
func Classify(err error) ErrorCode {
	if err == nil {
		return ""
	}
	for _, c := range classified {
		if errors.Is(err, c.sentinel) {
			return c.code
		}
	}
	return CodeUnknown
}

// IsTransient returns true if the given error code may clear up on its own.
func IsTransient(code ErrorCode) bool {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.Transient
	}
	return false
}

// GetSuggestedAction returns the suggested action for the given error code,
// or "" when there is none.
func GetSuggestedAction(code ErrorCode) string {
	return ErrorCodeRegistry[code].SuggestedAction
}

// GetDescription returns the human-readable description for the given error code.
func GetDescription(code ErrorCode) string {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.Description
	}
	return "Unknown error"
}
