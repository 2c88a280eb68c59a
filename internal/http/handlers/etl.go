package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalogue-etl/internal/etl"
	"github.com/yungbote/catalogue-etl/internal/http/response"
)

// BatchRunner is the part of etl.BatchDriver the API needs.
type BatchRunner interface {
	ProcessAll(ctx context.Context) etl.BatchResult
	Progress() *etl.Progress
}

type ETLHandler struct {
	newProcessor func() etl.DatasetProcessor
	batch        BatchRunner
	busy         atomic.Bool
}

// NewETLHandler takes a processor factory; every request runs on its own
// processor.
func NewETLHandler(newProcessor func() etl.DatasetProcessor, batch BatchRunner) *ETLHandler {
	return &ETLHandler{newProcessor: newProcessor, batch: batch}
}

// POST /api/etl/process/:identifier
func (h *ETLHandler) ProcessDataset(c *gin.Context) {
	identifier := strings.TrimSpace(c.Param("identifier"))
	if identifier == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_identifier", errors.New("missing identifier"))
		return
	}

	res := h.newProcessor().ProcessDataset(c.Request.Context(), identifier)
	c.JSON(processStatus(res), res)
}

func processStatus(res etl.ProcessResult) int {
	if res.IsSuccess {
		return http.StatusOK
	}
	err := res.Err()
	switch {
	case errors.Is(err, etl.ErrIdentifierNotFound):
		return http.StatusNotFound
	case errors.Is(err, etl.ErrNoFormatsExtracted):
		return http.StatusBadGateway
	case errors.Is(err, etl.ErrAllFormatsFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// POST /api/etl/process-all
func (h *ETLHandler) ProcessAll(c *gin.Context) {
	if !h.busy.CompareAndSwap(false, true) {
		response.RespondError(c, http.StatusConflict, "batch_running", errors.New("a batch run is already in progress"))
		return
	}
	defer h.busy.Store(false)

	res := h.batch.ProcessAll(c.Request.Context())
	status := http.StatusOK
	if res.Err() != nil {
		status = http.StatusInternalServerError
	}
	c.JSON(status, res)
}

// GET /api/etl/status
func (h *ETLHandler) Status(c *gin.Context) {
	response.RespondOK(c, h.batch.Progress().Snapshot())
}
