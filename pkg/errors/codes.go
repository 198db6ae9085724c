package errors

// ErrorCodeInfo contains metadata about an error code.
type ErrorCodeInfo struct {
	Code            ErrorCode
	Recoverable     bool
	Description     string
	SuggestedAction string
}

// ErrorCodeRegistry maps error codes to their metadata.
var ErrorCodeRegistry = map[ErrorCode]ErrorCodeInfo{
	ErrParseError: {
		Code:            ErrParseError,
		Recoverable:     false,
		Description:     "File parsing failed (malformed structure)",
		SuggestedAction: "Inspect the source file and re-export it from the calendar system",
	},
	ErrBadTimestamp: {
		Code:            ErrBadTimestamp,
		Recoverable:     true,
		Description:     "A date or time value did not match any known format",
		SuggestedAction: "Check the export locale; ISO 8601 timestamps are the safest choice",
	},
	ErrMissingField: {
		Code:            ErrMissingField,
		Recoverable:     true,
		Description:     "A required column or field is absent from the record",
		SuggestedAction: "Re-export with all columns, or check header naming against the docs",
	},
	ErrInvalidRecordCode: {
		Code:            ErrInvalidRecordCode,
		Recoverable:     true,
		Description:     "The record could not be interpreted as an event or employee",
		SuggestedAction: "Run with --debug to see which rows were skipped",
	},
	ErrUnsupportedInput: {
		Code:            ErrUnsupportedInput,
		Recoverable:     false,
		Description:     "The file extension or payload shape is not supported",
		SuggestedAction: "Provide a .csv or .json export",
	},
	ErrEmptyInput: {
		Code:            ErrEmptyInput,
		Recoverable:     false,
		Description:     "The load produced no usable records",
		SuggestedAction: "Verify the date range of the export covers actual meetings",
	},
	ErrIOError: {
		Code:            ErrIOError,
		Recoverable:     false,
		Description:     "The file could not be read",
		SuggestedAction: "Check the path and file permissions",
	},
	ErrLoadError: {
		Code:            ErrLoadError,
		Recoverable:     false,
		Description:     "Unclassified load error",
		SuggestedAction: "Run with --debug for the full error chain",
	},
}

// GetSuggestedAction returns the suggested action for the given error code.
func GetSuggestedAction(code ErrorCode) string {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.SuggestedAction
	}
	return "Run with --debug for the full error chain"
}

// GetDescription returns the human-readable description for the given error code.
func GetDescription(code ErrorCode) string {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.Description
	}
	return "Unknown error"
}
