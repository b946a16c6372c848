package handler

import (
	stdErrors "errors"
	"regexp"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/dto"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/summarizer"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/transcription"
)

var meetingIDParamRe = regexp.MustCompile(`^[A-Za-z0-9._-]{1,255}$`)

// TranscriptHandler serves transcript submission endpoints
type TranscriptHandler struct {
	svc           *summarizer.Service
	transcription *transcription.Service
	logger        *zap.Logger
}

// NewTranscriptHandler creates a new transcript handler
func NewTranscriptHandler(svc *summarizer.Service, transcriptionSvc *transcription.Service, logger *zap.Logger) *TranscriptHandler {
	return &TranscriptHandler{svc: svc, transcription: transcriptionSvc, logger: logger}
}

// Submit accepts transcript text for analysis
// @Summary      Submit a transcript
// @Description  Stores the transcript text and enqueues an asynchronous summarization job. Resubmitting for the same meeting replaces the previous transcript and summary.
// @Tags         Transcripts
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SubmitTranscriptRequest  true  "Transcript text"
// @Success      202      {object}  dto.SubmitResponse           "Summarization job queued"
// @Failure      400      {object}  map[string]interface{}       "Invalid payload"
// @Failure      413      {object}  map[string]interface{}       "Transcript too large"
// @Router       /transcripts [post]
func (h *TranscriptHandler) Submit(c echo.Context) error {
	var req dto.SubmitTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	transcript, job, err := h.svc.SubmitTranscript(c.Request().Context(), req.MeetingID, req.Title, req.Text)
	if err != nil {
		switch {
		case stdErrors.Is(err, entities.ErrTranscriptEmpty):
			return HandleError(h.logger, c, errors.ErrTranscriptEmpty())
		case stdErrors.Is(err, entities.ErrTranscriptTooLarge):
			return HandleError(h.logger, c, errors.ErrTranscriptTooLarge(summarizer.MaxTranscriptBytes))
		}
		return HandleError(h.logger, c, errors.ErrProcessingFailed(err))
	}

	return HandleSuccessWithStatus(h.logger, c, 202, dto.SubmitResponse{
		Transcript: dto.NewTranscriptResponse(transcript),
		Job:        dto.NewJobResponse(job),
	})
}

// SubmitAudio accepts an audio recording for transcription and analysis
// @Summary      Submit a meeting recording
// @Description  Accepts either an uploaded file (multipart field "audio") or a hosted recording URL (form field "audio_url"). The recording is transcribed and a summarization job is chained.
// @Tags         Transcripts
// @Accept       multipart/form-data
// @Produce      json
// @Param        meeting_id  path      string  true   "Meeting ID"
// @Param        title       formData  string  false  "Meeting title"
// @Param        audio       formData  file    false  "Audio recording"
// @Param        audio_url   formData  string  false  "URL of a hosted recording"
// @Success      202         {object}  dto.SubmitResponse      "Transcription job queued"
// @Failure      400         {object}  map[string]interface{}  "Missing audio file or URL"
// @Failure      503         {object}  map[string]interface{}  "Transcription not configured"
// @Router       /transcripts/{meeting_id}/audio [post]
func (h *TranscriptHandler) SubmitAudio(c echo.Context) error {
	meetingID := c.Param("meeting_id")
	if !meetingIDParamRe.MatchString(meetingID) {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting_id"))
	}

	if h.transcription == nil || !h.transcription.Enabled() {
		return HandleError(h.logger, c, errors.ErrProviderUnavailable("assemblyai"))
	}

	title := c.FormValue("title")
	ctx := c.Request().Context()

	var job *entities.ProcessingJob
	if fileHeader, err := c.FormFile("audio"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return HandleError(h.logger, c, errors.ErrAudioUploadFailed(meetingID, err))
		}
		defer file.Close()

		contentType := fileHeader.Header.Get("Content-Type")
		job, err = h.transcription.SubmitAudio(ctx, meetingID, title, file, fileHeader.Size, contentType)
		if err != nil {
			if stdErrors.Is(err, entities.ErrProviderUnavailable) {
				return HandleError(h.logger, c, errors.ErrProviderUnavailable("assemblyai"))
			}
			return HandleError(h.logger, c, errors.ErrAudioUploadFailed(meetingID, err))
		}
	} else if audioURL := c.FormValue("audio_url"); audioURL != "" {
		job, err = h.transcription.SubmitAudioURL(ctx, meetingID, title, audioURL)
		if err != nil {
			if stdErrors.Is(err, entities.ErrProviderUnavailable) {
				return HandleError(h.logger, c, errors.ErrProviderUnavailable("assemblyai"))
			}
			return HandleError(h.logger, c, errors.ErrAudioUploadFailed(meetingID, err))
		}
	} else {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("audio file or audio_url is required"))
	}

	return HandleSuccessWithStatus(h.logger, c, 202, dto.SubmitResponse{
		Job: dto.NewJobResponse(job),
	})
}

// Get returns the stored transcript for a meeting
// @Summary      Get a transcript
// @Tags         Transcripts
// @Produce      json
// @Param        meeting_id  path      string  true  "Meeting ID"
// @Success      200         {object}  dto.TranscriptResponse
// @Failure      404         {object}  map[string]interface{}  "Transcript not found"
// @Router       /transcripts/{meeting_id} [get]
func (h *TranscriptHandler) Get(c echo.Context) error {
	meetingID := c.Param("meeting_id")
	if !meetingIDParamRe.MatchString(meetingID) {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting_id"))
	}

	transcript, err := h.svc.GetTranscript(c.Request().Context(), meetingID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrTranscriptNotFound) {
			return HandleError(h.logger, c, errors.ErrTranscriptNotFound(meetingID))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, dto.NewTranscriptResponse(transcript))
}

// JobStatus returns the latest processing job for a meeting
// @Summary      Get processing status
// @Tags         Jobs
// @Produce      json
// @Param        meeting_id  path      string  true  "Meeting ID"
// @Success      200         {object}  dto.JobResponse
// @Failure      404         {object}  map[string]interface{}  "No job for meeting"
// @Router       /jobs/{meeting_id} [get]
func (h *TranscriptHandler) JobStatus(c echo.Context) error {
	meetingID := c.Param("meeting_id")
	if !meetingIDParamRe.MatchString(meetingID) {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting_id"))
	}

	job, err := h.svc.JobStatus(c.Request().Context(), meetingID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrJobNotFound) {
			return HandleError(h.logger, c, errors.ErrJobNotFound(meetingID))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, dto.NewJobResponse(job))
}
