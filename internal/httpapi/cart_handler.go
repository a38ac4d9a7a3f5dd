package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

const maxItemQuantity = 99

type CartHandler struct {
	carts    port.CartRepository
	products port.ProductRepository
	timeout  time.Duration
	logger   *slog.Logger
}

func NewCartHandler(carts port.CartRepository, products port.ProductRepository, timeout time.Duration, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
		timeout:  timeout,
		logger:   logger,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopper, ok := ShopperFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	h.respondCart(ctx, w, shopper.ID, http.StatusOK)
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopper, ok := ShopperFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a UUID")
		return
	}
	if req.Quantity <= 0 || req.Quantity > maxItemQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	if _, err := h.products.GetProduct(ctx, productID); err != nil {
		handleDomainError(w, h.logger, err)
		return
	}

	if err := h.carts.AddItem(ctx, shopper.ID, domain.CartItem{
		ProductID: productID,
		Quantity:  req.Quantity,
	}); err != nil {
		handleDomainError(w, h.logger, err)
		return
	}

	h.respondCart(ctx, w, shopper.ID, http.StatusCreated)
}

// PUT /api/v1/cart/items/{product_id}, quantity 0 removes the item
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopper, ok := ShopperFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a UUID")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 0 || req.Quantity > maxItemQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 0 and 99")
		return
	}

	found, err := h.carts.SetItemQuantity(ctx, shopper.ID, productID, req.Quantity)
	if err != nil {
		handleDomainError(w, h.logger, err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "item_not_found", "product is not in the cart")
		return
	}

	h.respondCart(ctx, w, shopper.ID, http.StatusOK)
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shopper, ok := ShopperFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a UUID")
		return
	}

	found, err := h.carts.DeleteItem(ctx, shopper.ID, productID)
	if err != nil {
		handleDomainError(w, h.logger, err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "item_not_found", "product is not in the cart")
		return
	}

	h.respondCart(ctx, w, shopper.ID, http.StatusOK)
}

func (h *CartHandler) respondCart(ctx context.Context, w http.ResponseWriter, ownerID string, status int) {
	cart, err := h.carts.GetCart(ctx, ownerID)
	if err != nil {
		handleDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, status, mapCartToDTO(cart))
}
