package ai

import (
	"context"
	"fmt"
	"io"

	assemblyai "github.com/AssemblyAI/assemblyai-go-sdk"
)

// TranscriptResult is the provider-neutral outcome of a transcription
type TranscriptResult struct {
	ExternalID      string
	Text            string
	Language        string
	Confidence      float64
	DurationSeconds int
}

// Transcriber wraps the AssemblyAI SDK for speech-to-text
type Transcriber struct {
	client *assemblyai.Client
}

// NewTranscriber creates a transcriber backed by AssemblyAI
func NewTranscriber(apiKey string) *Transcriber {
	return &Transcriber{client: assemblyai.NewClient(apiKey)}
}

// TranscribeFromReader uploads the audio stream and waits for the transcript.
// The SDK polls until the job completes or ctx expires.
func (t *Transcriber) TranscribeFromReader(ctx context.Context, audio io.Reader) (*TranscriptResult, error) {
	params := &assemblyai.TranscriptOptionalParams{
		SpeakerLabels:     assemblyai.Bool(true),
		LanguageDetection: assemblyai.Bool(true),
	}

	transcript, err := t.client.Transcripts.TranscribeFromReader(ctx, audio, params)
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == assemblyai.TranscriptStatusError {
		return nil, fmt.Errorf("assemblyai transcription failed: %s", assemblyai.ToString(transcript.Error))
	}

	result := &TranscriptResult{
		ExternalID: assemblyai.ToString(transcript.ID),
		Text:       assemblyai.ToString(transcript.Text),
		Language:   string(transcript.LanguageCode),
	}
	if transcript.Confidence != nil {
		result.Confidence = *transcript.Confidence
	}
	if transcript.AudioDuration != nil {
		result.DurationSeconds = int(*transcript.AudioDuration)
	}
	return result, nil
}

// TranscribeFromURL submits an already accessible audio URL and waits for
// the transcript.
func (t *Transcriber) TranscribeFromURL(ctx context.Context, audioURL string) (*TranscriptResult, error) {
	params := &assemblyai.TranscriptOptionalParams{
		SpeakerLabels:     assemblyai.Bool(true),
		LanguageDetection: assemblyai.Bool(true),
	}

	transcript, err := t.client.Transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == assemblyai.TranscriptStatusError {
		return nil, fmt.Errorf("assemblyai transcription failed: %s", assemblyai.ToString(transcript.Error))
	}

	result := &TranscriptResult{
		ExternalID: assemblyai.ToString(transcript.ID),
		Text:       assemblyai.ToString(transcript.Text),
		Language:   string(transcript.LanguageCode),
	}
	if transcript.Confidence != nil {
		result.Confidence = *transcript.Confidence
	}
	if transcript.AudioDuration != nil {
		result.DurationSeconds = int(*transcript.AudioDuration)
	}
	return result, nil
}
