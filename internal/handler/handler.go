package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shubhamjangid510/coffe-cup/internal/domain"
	"github.com/shubhamjangid510/coffe-cup/internal/service"
)

type Handler struct {
	service       service.ReadingService
	maxUploadSize int64
	log           *zap.Logger
}

func NewHandler(service service.ReadingService, maxUploadSize int64, log *zap.Logger) *Handler {
	return &Handler{
		service:       service,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

// UploadImage handles POST /upload_image/ with multipart fields reading_id,
// position and file.
func (h *Handler) UploadImage(c *gin.Context) {
	readingID := c.PostForm("reading_id")
	position := c.PostForm("position")

	file, err := c.FormFile("file")
	if err != nil {
		h.log.Error("Failed to get file from form", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	if file.Size > h.maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("File size exceeds %s limit", formatLimit(h.maxUploadSize)),
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		h.log.Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		h.log.Error("Failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	result, err := h.service.UploadImage(c.Request.Context(), readingID, position, file.Filename, data)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeCoffeeCup handles POST /analyze_coffee_cup/ with form fields
// language and reading_id.
func (h *Handler) AnalyzeCoffeeCup(c *gin.Context) {
	language := c.PostForm("language")
	readingID := c.PostForm("reading_id")

	result, err := h.service.Analyze(c.Request.Context(), readingID, language)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListReadingImages handles GET /readings/:reading_id/images.
func (h *Handler) ListReadingImages(c *gin.Context) {
	readingID := c.Param("reading_id")

	positions, err := h.service.Images(c.Request.Context(), readingID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reading_id":     readingID,
		"positions":      positions,
		"uploaded_count": len(positions),
	})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
	} else {
		h.log.Warn("Request rejected",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// formatLimit renders the configured upload ceiling the way the API
// advertises it: whole megabytes as "15MB", anything else in bytes.
func formatLimit(limit int64) string {
	const mb = 1 << 20
	if limit >= mb && limit%mb == 0 {
		return fmt.Sprintf("%dMB", limit/mb)
	}
	return fmt.Sprintf("%d bytes", limit)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrMissingImages):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
