package errors

// ErrorCode identifies an application error category. Codes are stable and
// returned in API responses, so renumbering is a breaking change.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// Generic
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004

	// Pipeline
	ErrorCode_TRANSIENT             ErrorCode = 2000
	ErrorCode_VALIDATION            ErrorCode = 2001
	ErrorCode_PARTIAL_FAILURE       ErrorCode = 2002
	ErrorCode_UNKNOWN_MEETING_TYPE  ErrorCode = 2003
	ErrorCode_SUMMARIZATION_FAILED  ErrorCode = 2004
	ErrorCode_INDEXING_FAILED       ErrorCode = 2005
	ErrorCode_DISPATCH_FAILED       ErrorCode = 2006
	ErrorCode_PROVIDER_UNAVAILABLE  ErrorCode = 2007
	ErrorCode_PROVIDER_REJECTED     ErrorCode = 2008
	ErrorCode_DIMENSION_MISMATCH    ErrorCode = 2009
	ErrorCode_MISSING_PROJECT_MAP   ErrorCode = 2010
	ErrorCode_SUMMARIZATION_LOCKED  ErrorCode = 2011
	ErrorCode_TRANSCRIPT_FETCH_FAIL ErrorCode = 2012

	// Database
	ErrorCode_DB_QUERY_FAILED ErrorCode = 3000
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:               "OK",
	ErrorCode_INTERNAL:              "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:      "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:             "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:        "ALREADY_EXISTS",
	ErrorCode_INVALID_PAYLOAD:       "INVALID_PAYLOAD",
	ErrorCode_TRANSIENT:             "TRANSIENT",
	ErrorCode_VALIDATION:            "VALIDATION",
	ErrorCode_PARTIAL_FAILURE:       "PARTIAL_FAILURE",
	ErrorCode_UNKNOWN_MEETING_TYPE:  "UNKNOWN_MEETING_TYPE",
	ErrorCode_SUMMARIZATION_FAILED:  "SUMMARIZATION_FAILED",
	ErrorCode_INDEXING_FAILED:       "INDEXING_FAILED",
	ErrorCode_DISPATCH_FAILED:       "DISPATCH_FAILED",
	ErrorCode_PROVIDER_UNAVAILABLE:  "PROVIDER_UNAVAILABLE",
	ErrorCode_PROVIDER_REJECTED:     "PROVIDER_REJECTED",
	ErrorCode_DIMENSION_MISMATCH:    "DIMENSION_MISMATCH",
	ErrorCode_MISSING_PROJECT_MAP:   "MISSING_PROJECT_MAP",
	ErrorCode_SUMMARIZATION_LOCKED:  "SUMMARIZATION_LOCKED",
	ErrorCode_TRANSCRIPT_FETCH_FAIL: "TRANSCRIPT_FETCH_FAIL",
	ErrorCode_DB_QUERY_FAILED:       "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
