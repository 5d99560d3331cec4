package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/api/response"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/report"
)

// ReportsHandler serves stored analysis reports.
type ReportsHandler struct {
	store report.Store
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(store report.Store) *ReportsHandler {
	return &ReportsHandler{store: store}
}

// List returns reports matching query parameters, newest first.
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := report.ListFilter{
		City:  q.Get("city"),
		State: q.Get("state"),
	}
	if s := q.Get("strategy"); s != "" {
		filter.Recommended = core.StrategyID(s)
	}
	if from := q.Get("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = t
		} else if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.From = t
		}
	}
	if to := q.Get("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = t
		} else if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.To = t
		}
	}
	if limit := q.Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			filter.Limit = n
		}
	} else {
		filter.Limit = 50
	}
	if offset := q.Get("offset"); offset != "" {
		if n, err := strconv.Atoi(offset); err == nil {
			filter.Offset = n
		}
	}

	reports, err := h.store.List(r.Context(), filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}
	total, err := h.store.Count(r.Context(), filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"reports": reports,
		"total":   total,
	})
}

// Get returns one report by id.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	rep, err := h.store.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, core.ErrReportNotFound) {
			response.Error(w, http.StatusNotFound, err)
			return
		}
		response.Error(w, http.StatusInternalServerError, err)
		return
	}
	response.JSON(w, http.StatusOK, rep)
}
