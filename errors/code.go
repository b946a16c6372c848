package errors

// ErrorCode identifies an error category across the API surface.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_FORBIDDEN         ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1006

	// Transcripts
	ErrorCode_TRANSCRIPT_NOT_FOUND  ErrorCode = 2000
	ErrorCode_TRANSCRIPT_EMPTY      ErrorCode = 2001
	ErrorCode_TRANSCRIPT_TOO_LARGE  ErrorCode = 2002
	ErrorCode_AUDIO_UPLOAD_FAILED   ErrorCode = 2003
	ErrorCode_AUDIO_OBJECT_MISSING  ErrorCode = 2004
	ErrorCode_TRANSCRIPTION_FAILED  ErrorCode = 2005
	ErrorCode_TRANSCRIPT_PROCESSING ErrorCode = 2006

	// Summaries
	ErrorCode_SUMMARY_NOT_FOUND    ErrorCode = 3000
	ErrorCode_SUMMARY_NOT_READY    ErrorCode = 3001
	ErrorCode_SUMMARIZATION_FAILED ErrorCode = 3002

	// Providers
	ErrorCode_PROVIDER_UNAVAILABLE   ErrorCode = 4000
	ErrorCode_PROVIDER_NOT_SUPPORTED ErrorCode = 4001
	ErrorCode_PROVIDER_QUOTA         ErrorCode = 4002

	// Jobs
	ErrorCode_JOB_NOT_FOUND     ErrorCode = 5000
	ErrorCode_JOB_NOT_RETRYABLE ErrorCode = 5001
	ErrorCode_PROCESSING_FAILED ErrorCode = 5002

	// Infrastructure
	ErrorCode_DB_CONNECTION_FAILED    ErrorCode = 6000
	ErrorCode_DB_QUERY_FAILED         ErrorCode = 6001
	ErrorCode_DB_TRANSACTION_FAILED   ErrorCode = 6002
	ErrorCode_INTEGRATION_STORAGE     ErrorCode = 6003
	ErrorCode_INTEGRATION_CACHE       ErrorCode = 6004
	ErrorCode_INTEGRATION_EXTERNAL_API ErrorCode = 6005
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                  "OK",
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:           "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:        "PERMISSION_DENIED",
	ErrorCode_FORBIDDEN:                "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:          "INVALID_PAYLOAD",
	ErrorCode_TRANSCRIPT_NOT_FOUND:     "TRANSCRIPT_NOT_FOUND",
	ErrorCode_TRANSCRIPT_EMPTY:         "TRANSCRIPT_EMPTY",
	ErrorCode_TRANSCRIPT_TOO_LARGE:     "TRANSCRIPT_TOO_LARGE",
	ErrorCode_AUDIO_UPLOAD_FAILED:      "AUDIO_UPLOAD_FAILED",
	ErrorCode_AUDIO_OBJECT_MISSING:     "AUDIO_OBJECT_MISSING",
	ErrorCode_TRANSCRIPTION_FAILED:     "TRANSCRIPTION_FAILED",
	ErrorCode_TRANSCRIPT_PROCESSING:    "TRANSCRIPT_PROCESSING",
	ErrorCode_SUMMARY_NOT_FOUND:        "SUMMARY_NOT_FOUND",
	ErrorCode_SUMMARY_NOT_READY:        "SUMMARY_NOT_READY",
	ErrorCode_SUMMARIZATION_FAILED:     "SUMMARIZATION_FAILED",
	ErrorCode_PROVIDER_UNAVAILABLE:     "PROVIDER_UNAVAILABLE",
	ErrorCode_PROVIDER_NOT_SUPPORTED:   "PROVIDER_NOT_SUPPORTED",
	ErrorCode_PROVIDER_QUOTA:           "PROVIDER_QUOTA",
	ErrorCode_JOB_NOT_FOUND:            "JOB_NOT_FOUND",
	ErrorCode_JOB_NOT_RETRYABLE:        "JOB_NOT_RETRYABLE",
	ErrorCode_PROCESSING_FAILED:        "PROCESSING_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:     "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:          "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:    "DB_TRANSACTION_FAILED",
	ErrorCode_INTEGRATION_STORAGE:      "INTEGRATION_STORAGE",
	ErrorCode_INTEGRATION_CACHE:        "INTEGRATION_CACHE",
	ErrorCode_INTEGRATION_EXTERNAL_API: "INTEGRATION_EXTERNAL_API",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
