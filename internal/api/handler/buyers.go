package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/api/response"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/buyer"
)

// BuyersHandler handles buyer CRUD requests.
type BuyersHandler struct {
	store buyer.Store
}

// NewBuyersHandler creates a new buyers handler.
func NewBuyersHandler(store buyer.Store) *BuyersHandler {
	return &BuyersHandler{store: store}
}

// List returns buyers matching query parameters.
func (h *BuyersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := buyer.ListFilter{
		State: q.Get("state"),
		City:  q.Get("city"),
	}
	if pt := q.Get("property_type"); pt != "" {
		filter.PropertyType = core.PropertyType(pt)
	}
	if v := q.Get("verified"); v != "" {
		verified := v == "true" || v == "1"
		filter.Verified = &verified
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

	buyers, err := h.store.List(r.Context(), filter)
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
		"buyers": buyers,
		"total":  total,
	})
}

// Get returns one buyer by id.
func (h *BuyersHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, core.ErrBuyerNotFound) {
			response.Error(w, http.StatusNotFound, err)
			return
		}
		response.Error(w, http.StatusInternalServerError, err)
		return
	}
	response.JSON(w, http.StatusOK, b)
}

// Save inserts or replaces a buyer.
func (h *BuyersHandler) Save(w http.ResponseWriter, r *http.Request) {
	var b core.Buyer
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, err))
		return
	}
	if b.ID == "" {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, errors.New("buyer id required")))
		return
	}

	if err := h.store.Save(r.Context(), b); err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}
	response.JSON(w, http.StatusOK, b)
}

// Delete removes a buyer by id.
func (h *BuyersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}
