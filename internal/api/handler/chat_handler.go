package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/visago/visa-assistant/internal/api/metrics"
	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/ports"
)

type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Reply handles POST /chat. Upstream refusals are relayed with their own
// status code.
//
// @Summary      Ask the visa assistant
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      chatRequest  true  "Conversation so far"
// @Success      200   {object}  chatResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /chat [post]
func (h *ChatHandler) Reply(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload(err)
	}
	if len(req.History) == 0 {
		metrics.ChatRequestsTotal.WithLabelValues("400").Inc()
		return domain.ErrEmptyHistory
	}
	if err := c.Validate(&req); err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("400").Inc()
		return errValidation(err)
	}

	content, err := h.service.Reply(c.Request().Context(), toChatMessages(req.History))
	if err != nil {
		var upstream *ports.UpstreamError
		switch {
		case errors.As(err, &upstream):
			metrics.ChatRequestsTotal.WithLabelValues(strconv.Itoa(upstream.Status)).Inc()
			return c.JSON(upstream.Status, errorResponse{Error: upstream.Message})
		case errors.Is(err, domain.ErrEmptyHistory):
			metrics.ChatRequestsTotal.WithLabelValues("400").Inc()
			return err
		}
		metrics.ChatRequestsTotal.WithLabelValues("502").Inc()
		return fmt.Errorf("%w: %v", domain.ErrChatUnavailable, err)
	}

	metrics.ChatRequestsTotal.WithLabelValues("200").Inc()
	return c.JSON(http.StatusOK, chatResponse{Content: content})
}
