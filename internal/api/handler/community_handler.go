package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/ports"
)

type CommunityHandler struct {
	service ports.CommunityService
}

func NewCommunityHandler(service ports.CommunityService) *CommunityHandler {
	return &CommunityHandler{service: service}
}

// List handles GET /community.
//
// @Summary      List community posts
// @Tags         community
// @Produce      json
// @Param        status  query     string  false  "pending, approved or rejected"
// @Success      200     {array}   domain.CommunityPost
// @Failure      503     {object}  errorResponse
// @Router       /community [get]
func (h *CommunityHandler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context(), domain.PostStatus(c.QueryParam("status")))
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []domain.CommunityPost{}
	}
	return c.JSON(http.StatusOK, posts)
}

// Create handles POST /community. New posts wait for moderation.
//
// @Summary      Submit a post
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  domain.CommunityPost
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /community [post]
func (h *CommunityHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return errValidation(err)
	}

	post, err := h.service.Create(c.Request().Context(), ports.CreatePostInput{
		AuthorID:    id.UserID,
		AuthorName:  id.Name,
		Title:       req.Title,
		Content:     req.Content,
		CountryCode: req.CountryCode,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdateStatus handles PATCH /community/:id/status.
//
// @Summary      Moderate a post
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Post id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.CommunityPost
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /community/{id}/status [patch]
func (h *CommunityHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return errValidation(err)
	}

	post, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.PostStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// React handles POST /community/:id/likes.
//
// @Summary      Like or dislike a post
// @Tags         community
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true   "Post id"
// @Param        body  body      reactRequest  false  "Reaction, like by default"
// @Success      200   {object}  domain.CommunityPost
// @Failure      404   {object}  errorResponse
// @Router       /community/{id}/likes [post]
func (h *CommunityHandler) React(c echo.Context) error {
	var req reactRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload(err)
	}
	if err := c.Validate(&req); err != nil {
		return errValidation(err)
	}
	if req.Type == "" {
		req.Type = domain.ReactionLike
	}

	post, err := h.service.React(c.Request().Context(), c.Param("id"), req.Type)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /community/:id.
//
// @Summary      Delete a post
// @Tags         community
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /community/{id} [delete]
func (h *CommunityHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
