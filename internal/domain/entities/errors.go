package entities

import "errors"

// Domain errors
var (
	// Transcript errors
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrTranscriptEmpty    = errors.New("transcript text is empty")
	ErrTranscriptExists   = errors.New("transcript already exists for meeting")
	ErrInvalidMeetingID   = errors.New("invalid meeting id")
	ErrAudioObjectMissing = errors.New("audio object not found in storage")
	ErrTranscriptTooLarge = errors.New("transcript exceeds size limit")

	// Summary errors
	ErrSummaryNotFound   = errors.New("summary not found")
	ErrSummaryNotReady   = errors.New("summary not ready")
	ErrSummarizationFail = errors.New("summarization failed")

	// Job errors
	ErrJobNotFound     = errors.New("job not found")
	ErrJobNotRetryable = errors.New("job is not retryable")

	// Provider errors
	ErrProviderUnavailable  = errors.New("summarization provider unavailable")
	ErrProviderNotSupported = errors.New("summarization provider not supported")

	// Generic errors
	ErrInvalidRequest = errors.New("invalid request")
)
