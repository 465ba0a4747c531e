package handler

import (
	"errors"
	"strconv"

	"remo-go/internal/api/dto"
	"remo-go/internal/api/middleware"
	"remo-go/internal/api/response"
	"remo-go/internal/service"
	"remo-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// Create POST /api/v1/videos
func (h *VideoHandler) Create(c *gin.Context) {
	var req dto.VideoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	identity := middleware.CurrentIdentity(c)

	info, err := h.videoService.Create(identity, &req)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.Created(c, "video created", info)
}

// GetDetail GET /api/v1/videos/:id
func (h *VideoHandler) GetDetail(c *gin.Context) {
	info, err := h.videoService.GetByID(c.Param("id"))
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "video retrieved", info)
}

// List GET /api/v1/videos
func (h *VideoHandler) List(c *gin.Context) {
	skip, limit := parsePagination(c)

	data, err := h.videoService.List(skip, limit)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "videos retrieved", data)
}

// Delete DELETE /api/v1/videos/:id
func (h *VideoHandler) Delete(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	if err := h.videoService.Delete(identity, c.Param("id")); err != nil {
		handleVideoError(c, err)
		return
	}

	response.NoContent(c)
}

// Seed POST /api/v1/videos/seed
func (h *VideoHandler) Seed(c *gin.Context) {
	inserted, err := h.videoService.Seed()
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "seed completed", gin.H{"inserted": inserted})
}

func parsePagination(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return skip, limit
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAuthenticationRequired),
		errors.Is(err, service.ErrVideoDeleteForbidden):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, please try again later")
	}
}
