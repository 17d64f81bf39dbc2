package internal

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rm-hull/edge-blur/internal/models"
	"github.com/rm-hull/edge-blur/internal/pipeline"
	"github.com/rm-hull/edge-blur/internal/png"
	"github.com/sirupsen/logrus"
)

const maxUploadBytes = 32 << 20

type Handler struct {
	processor *Processor
	logger    *logrus.Logger
}

func NewHandler(processor *Processor, logger *logrus.Logger) *Handler {
	return &Handler{processor: processor, logger: logger}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/v1/edge-blur", h.EdgeBlur)
}

// EdgeBlur processes the uploaded image, sent either as the raw request body
// or as the multipart field "image". The view query parameter selects the
// response: result (default), panel, animation or stats.
func (h *Handler) EdgeBlur(c *gin.Context) {
	view := c.DefaultQuery("view", "result")
	switch view {
	case "result", "panel", "animation", "stats":
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown view: " + view})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	body, err := upload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	defer func() {
		_ = body.Close()
	}()

	img, err := png.Decode(body)
	if err != nil {
		h.fail(c, err)
		return
	}

	frame, err := h.processor.Process(img)
	if err != nil {
		h.fail(c, err)
		return
	}

	switch view {
	case "stats":
		c.JSON(http.StatusOK, h.processor.Summarise(frame))
	case "animation":
		data, err := h.processor.Animation(frame)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Data(http.StatusOK, "image/apng", data)
	default:
		result := frame.Result
		if view == "panel" {
			result = h.processor.Panel(frame)
		}
		data, err := png.EncodeBytes(result)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", data)
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error("Edge blur request failed")
	} else {
		h.logger.WithError(err).Warn("Edge blur request rejected")
	}
	c.JSON(status, models.ErrorResponse{Error: err.Error()})
}

func upload(c *gin.Context) (io.ReadCloser, error) {
	if c.ContentType() == "multipart/form-data" {
		file, err := c.FormFile("image")
		if err != nil {
			return nil, err
		}
		return file.Open()
	}
	return c.Request.Body, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pipeline.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, pipeline.ErrConfiguration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
