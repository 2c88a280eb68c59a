package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/catalogue-etl/internal/http/response"
	"github.com/yungbote/catalogue-etl/internal/services"
)

type SearchHandler struct {
	svc services.DatasetDiscoveryService
}

func NewSearchHandler(svc services.DatasetDiscoveryService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// GET /api/search?q=&limit=
func (h *SearchHandler) Search(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	rows, err := h.svc.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"datasets": rows, "count": len(rows)})
}

// GET /api/search/details/:identifier
func (h *SearchHandler) Details(c *gin.Context) {
	details, err := h.svc.GetDetails(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, details)
}

// GET /api/search/stats
func (h *SearchHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, st)
}
