package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yuzvak/stockdecay-service/internal/application/commands"
	"github.com/yuzvak/stockdecay-service/internal/application/use_cases"
	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/http/response"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

type ItemAdder interface {
	Handle(ctx context.Context, cmd commands.AddItemCommand) (*inventory.Item, error)
}

type ItemStore interface {
	ListItems(ctx context.Context, limit, offset int) ([]*inventory.Item, error)
	GetItem(ctx context.Context, id string) (*inventory.Item, error)
	RemoveItem(ctx context.Context, id string) error
}

type ItemHandler struct {
	adder ItemAdder
	store ItemStore
	log   *logger.Logger
}

func NewItemHandler(adder ItemAdder, store ItemStore, log *logger.Logger) *ItemHandler {
	return &ItemHandler{
		adder: adder,
		store: store,
		log:   log,
	}
}

type ItemResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	SellIn    int    `json:"sell_in"`
	Quality   int    `json:"quality"`
	Expired   bool   `json:"expired"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toItemResponse(item *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Category:  item.Category.String(),
		SellIn:    item.SellIn,
		Quality:   item.Quality,
		Expired:   item.IsExpired(),
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.Format(time.RFC3339),
	}
}

type ItemsPage struct {
	Items  []ItemResponse `json:"items"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

func (h *ItemHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	limit, offset, errs := parsePage(r)
	if len(errs) > 0 {
		response.WriteValidationError(w, "Validation failed", errs)
		return
	}
	limit, offset = use_cases.NormalizePage(limit, offset)

	items, err := h.store.ListItems(r.Context(), limit, offset)
	if err != nil {
		h.log.Error("Failed to list items", "error", err)
		response.WriteDomainError(w, err)
		return
	}

	page := ItemsPage{
		Items:  make([]ItemResponse, 0, len(items)),
		Limit:  limit,
		Offset: offset,
	}
	for _, item := range items {
		page.Items = append(page.Items, toItemResponse(item))
	}

	response.WriteSuccess(w, page)
}

type createItemRequest struct {
	Name    *string `json:"name"`
	SellIn  *int    `json:"sell_in"`
	Quality *int    `json:"quality"`
}

func (h *ItemHandler) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusError, "Invalid request body", err.Error())
		return
	}

	errs := make(map[string]string)
	if req.Name == nil {
		errs["name"] = "Name is required"
	}
	if req.SellIn == nil {
		errs["sell_in"] = "Sell-in is required"
	}
	if req.Quality == nil {
		errs["quality"] = "Quality is required"
	}
	if len(errs) > 0 {
		response.WriteValidationError(w, "Validation failed", errs)
		return
	}

	item, err := h.adder.Handle(r.Context(), commands.AddItemCommand{
		Name:    *req.Name,
		SellIn:  *req.SellIn,
		Quality: *req.Quality,
	})
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteCreated(w, toItemResponse(item))
}

func (h *ItemHandler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, toItemResponse(item))
}

func (h *ItemHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parsePage(r *http.Request) (int, int, map[string]string) {
	errs := make(map[string]string)
	limit, offset := 0, 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			errs["limit"] = "Limit must be a positive integer"
		}
		limit = v
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			errs["offset"] = "Offset must be a non-negative integer"
		}
		offset = v
	}

	return limit, offset, errs
}
