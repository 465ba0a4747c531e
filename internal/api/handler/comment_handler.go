package handler

import (
	"errors"

	"remo-go/internal/api/dto"
	"remo-go/internal/api/middleware"
	"remo-go/internal/api/response"
	"remo-go/internal/service"
	"remo-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create POST /api/v1/videos/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	videoID := c.Param("id")

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	identity := middleware.CurrentIdentity(c)

	info, err := h.commentService.Create(c.Request.Context(), identity, videoID, &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.Created(c, "comment created", info)
}

// ListByVideo GET /api/v1/videos/:id/comments
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID := c.Param("id")

	var query dto.CommentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}

	data, err := h.commentService.ListByVideo(videoID, &query)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "comments retrieved", data)
}

// Delete DELETE /api/v1/videos/:id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	videoID := c.Param("id")
	commentID := c.Param("comment_id")

	identity := middleware.CurrentIdentity(c)

	if err := h.commentService.Delete(c.Request.Context(), identity, videoID, commentID); err != nil {
		handleCommentError(c, err)
		return
	}

	response.NoContent(c)
}

// handleCommentError 内部错误到边界响应码的唯一翻译点
func handleCommentError(c *gin.Context, err error) {
	var rateLimitErr *service.RateLimitError

	switch {
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrDisplayNameRequired),
		errors.Is(err, service.ErrInvalidTimestamp),
		errors.Is(err, service.ErrEmptyBody),
		errors.Is(err, service.ErrBodyTooLong):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrGuestCommentProtected),
		errors.Is(err, service.ErrAuthenticationRequired),
		errors.Is(err, service.ErrNotCommentOwner):
		response.Forbidden(c, err.Error())
	case errors.As(err, &rateLimitErr):
		response.TooManyRequests(c, rateLimitErr.Message, rateLimitErr.RetryAfterSeconds)
	default:
		logger.Error("Comment operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, please try again later")
	}
}
