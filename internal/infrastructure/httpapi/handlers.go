package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"HazardBoard/internal/analytics"
	"HazardBoard/internal/dataset"
	"HazardBoard/internal/usecase"
)

const requestDateLayout = "2006-01-02"

// Handler serves the dashboard bundle and accepts filter-change events.
type Handler struct {
	board    *usecase.Dashboard
	store    *dataset.Store
	pageSize int
	logger   *slog.Logger
}

// NewHandler wires the orchestrator and store into the HTTP facade.
func NewHandler(board *usecase.Dashboard, store *dataset.Store, pageSize int, logger *slog.Logger) *Handler {
	if pageSize <= 0 {
		pageSize = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{board: board, store: store, pageSize: pageSize, logger: logger}
}

// HealthCheck reports process liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "articles": h.store.Len()})
}

// GetDashboard returns the last published bundle.
func (h *Handler) GetDashboard(c *gin.Context) {
	bundle, ok := h.board.Bundle()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no bundle published yet"})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

// filterRequest is the wire shape of one filter-change event. Dates travel
// as YYYY-MM-DD strings; absent means unrestricted.
type filterRequest struct {
	Categories    []string `json:"categories"`
	LocationUnits []string `json:"locationUnits"`
	DateFrom      string   `json:"dateFrom"`
	DateTo        string   `json:"dateTo"`
}

// UpdateFilters applies a filter-change event and returns the fresh
// bundle. Invalid criteria leave the previous bundle untouched and yield
// 400; a superseded pass yields whatever newer bundle won.
func (h *Handler) UpdateFilters(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	event := usecase.FilterEvent{
		Categories:    req.Categories,
		LocationUnits: req.LocationUnits,
	}

	var err error
	if event.DateFrom, err = parseRequestDate(req.DateFrom); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dateFrom: " + err.Error()})
		return
	}
	if event.DateTo, err = parseRequestDate(req.DateTo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dateTo: " + err.Error()})
		return
	}

	bundle, err := h.board.Apply(c.Request.Context(), event)
	switch {
	case errors.Is(err, analytics.ErrInvalidCriteria):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, usecase.ErrSuperseded):
		// A newer event won the race; hand back its bundle.
		latest, ok := h.board.Bundle()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no bundle published yet"})
			return
		}
		c.JSON(http.StatusOK, latest)
		return
	case err != nil:
		h.logger.Error("filter pass failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "filter pass failed"})
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// ListArticles applies a pagination window over the current bundle's
// table. Pagination is a view concern, so it lives here and not in the
// core formatter.
func (h *Handler) ListArticles(c *gin.Context) {
	bundle, ok := h.board.Bundle()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no bundle published yet"})
		return
	}

	page := queryInt(c, "page", 1)
	size := queryInt(c, "size", h.pageSize)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = h.pageSize
	}

	total := len(bundle.Table)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"passId": bundle.PassID,
		"page":   page,
		"size":   size,
		"total":  total,
		"rows":   bundle.Table[start:end],
	})
}

// GetOptions returns the distinct filter values for the controls.
func (h *Handler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Options())
}

func parseRequestDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(requestDateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
