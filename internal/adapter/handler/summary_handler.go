package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/summarizer"
)

// SummaryHandler serves summary retrieval endpoints
type SummaryHandler struct {
	svc    *summarizer.Service
	logger *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(svc *summarizer.Service, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{svc: svc, logger: logger}
}

// Get returns the summary for a meeting
// @Summary      Get a meeting summary
// @Description  Returns the structured summary. While the summarization job is still running the endpoint answers 202.
// @Tags         Summaries
// @Produce      json
// @Param        meeting_id  path      string  true  "Meeting ID"
// @Success      200         {object}  entities.MeetingSummary
// @Success      202         {object}  map[string]interface{}  "Summary still being generated"
// @Failure      404         {object}  map[string]interface{}  "Summary not found"
// @Router       /summaries/{meeting_id} [get]
func (h *SummaryHandler) Get(c echo.Context) error {
	meetingID := c.Param("meeting_id")
	if !meetingIDParamRe.MatchString(meetingID) {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting_id"))
	}

	summary, err := h.svc.GetSummary(c.Request().Context(), meetingID)
	if err != nil {
		switch {
		case stdErrors.Is(err, entities.ErrSummaryNotReady):
			return HandleSuccessWithStatus(h.logger, c, 202, map[string]interface{}{
				"meeting_id": meetingID,
				"status":     "processing",
			})
		case stdErrors.Is(err, entities.ErrSummaryNotFound):
			return HandleError(h.logger, c, errors.ErrSummaryNotFound(meetingID))
		default:
			return HandleError(h.logger, c, errors.ErrInternal(err))
		}
	}

	return HandleSuccess(h.logger, c, summary)
}

// Delete removes the summary for a meeting
// @Summary      Delete a meeting summary
// @Tags         Summaries
// @Produce      json
// @Param        meeting_id  path      string  true  "Meeting ID"
// @Success      200         {object}  map[string]interface{}  "Summary deleted"
// @Failure      404         {object}  map[string]interface{}  "Summary not found"
// @Router       /summaries/{meeting_id} [delete]
func (h *SummaryHandler) Delete(c echo.Context) error {
	meetingID := c.Param("meeting_id")
	if !meetingIDParamRe.MatchString(meetingID) {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting_id"))
	}

	if err := h.svc.DeleteSummary(c.Request().Context(), meetingID); err != nil {
		if stdErrors.Is(err, entities.ErrSummaryNotFound) {
			return HandleError(h.logger, c, errors.ErrSummaryNotFound(meetingID))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"meeting_id": meetingID,
		"status":     "deleted",
	})
}

// Providers reports the status of all summarization backends
// @Summary      List summarization providers
// @Tags         Providers
// @Produce      json
// @Success      200  {array}  summarizer.ProviderStatus
// @Router       /providers [get]
func (h *SummaryHandler) Providers(c echo.Context) error {
	return HandleSuccess(h.logger, c, h.svc.Providers(c.Request().Context()))
}
