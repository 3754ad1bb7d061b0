package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shopx/nthcart/internal/journal"
	"github.com/shopx/nthcart/internal/pkg/cache"
	"github.com/shopx/nthcart/internal/store"
)

// idempotencyTTL is how long a completed checkout stays replayable for the
// same X-Idempotency-Key.
const idempotencyTTL = 24 * time.Hour

// Handler translates HTTP requests into store operations. It owns no state
// of its own; everything lives in the store.
type Handler struct {
	store      *store.Store
	journalLog journal.Repository // nil-safe: journaling skipped if nil
	idemCache  cache.Cache        // nil-safe: idempotency replay skipped if nil
}

// NewHandler builds the handler. journalLog and idemCache may be nil — each
// feature is simply disabled then.
func NewHandler(s *store.Store, journalLog journal.Repository, idemCache cache.Cache) *Handler {
	return &Handler{
		store:      s,
		journalLog: journalLog,
		idemCache:  idemCache,
	}
}

// ListProducts returns the full catalog.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.store.ListProducts()
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = mapProduct(p)
	}
	writeData(w, http.StatusOK, out)
}

// GetProduct returns one product by id.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := h.store.GetProduct(id)
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeData(w, http.StatusOK, mapProduct(p))
}

// GetCart returns the caller's cart, creating an empty one on first access.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart := h.store.GetCart(CartIDFromContext(r.Context()))
	writeData(w, http.StatusOK, h.mapCart(cart))
}

// AddCartItem adds a product to the caller's cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ProductID == "" || req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "product_id and a quantity >= 1 are required")
		return
	}

	cart, err := h.store.AddToCart(CartIDFromContext(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, h.mapCart(cart))
}

// UpdateCartItem sets a line's quantity; zero removes the line.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	productID := chi.URLParam(r, "productID")
	cart, err := h.store.UpdateCartItem(CartIDFromContext(r.Context()), productID, req.Quantity)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, h.mapCart(cart))
}

// RemoveCartItem deletes a line from the caller's cart.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	cart, err := h.store.RemoveFromCart(CartIDFromContext(r.Context()), productID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, h.mapCart(cart))
}

// ClearCart deletes the caller's cart entirely.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.ClearCart(CartIDFromContext(r.Context()))
	writeData(w, http.StatusOK, nil)
}

// Checkout processes the caller's cart, honouring an optional discount code
// and an optional X-Idempotency-Key header. A replayed key returns the
// previously committed order instead of charging stock twice.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cartID := CartIDFromContext(ctx)

	// The body is optional: checkout without a discount code sends nothing.
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	idemKey := r.Header.Get("X-Idempotency-Key")
	if h.idemCache != nil && idemKey != "" {
		cached, err := h.idemCache.Get(ctx, h.idemCache.GenerateKey("checkout", idemKey))
		if err != nil {
			slog.ErrorContext(ctx, "idempotency cache lookup failed", "error", err)
		} else if cached != "" {
			var resp OrderResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				writeData(w, http.StatusOK, resp)
				return
			}
		}
	}

	order, err := h.store.Checkout(cartID, req.DiscountCode)
	if err != nil {
		// A stale cookie referencing a cart the store no longer knows (e.g.
		// after a restart) should not keep failing forever.
		if errors.Is(err, store.ErrCartNotFound) {
			clearCartCookie(w)
			writeError(w, http.StatusNotFound, "Cart not found. Please add items to your cart first.")
			return
		}
		h.writeStoreError(w, err)
		return
	}

	slog.InfoContext(ctx, "order committed",
		"order_id", order.ID,
		"total", order.Total.String(),
		"discount_code", order.DiscountCode,
	)

	resp := mapOrder(order)

	if h.idemCache != nil && idemKey != "" {
		if b, err := json.Marshal(resp); err == nil {
			key := h.idemCache.GenerateKey("checkout", idemKey)
			if err := h.idemCache.Set(ctx, key, b, idempotencyTTL); err != nil {
				slog.ErrorContext(ctx, "idempotency cache store failed", "order_id", order.ID, "error", err)
			}
		}
	}

	if h.journalLog != nil {
		itemCount := 0
		for _, it := range order.Items {
			itemCount += it.Quantity
		}
		entry := journal.NewEntry(ctx, order.ID, order.Total.String(), order.DiscountCode, itemCount, resp, order.CreatedAt)
		if err := h.journalLog.Save(ctx, entry); err != nil {
			slog.ErrorContext(ctx, "order journal write failed", "order_id", order.ID, "error", err)
		}
	}

	clearCartCookie(w)
	writeData(w, http.StatusCreated, resp)
}

// AvailableDiscount reports the currently available unredeemed code, or null.
func (h *Handler) AvailableDiscount(w http.ResponseWriter, r *http.Request) {
	dc, ok := h.store.AvailableDiscountCode()
	if !ok {
		writeData(w, http.StatusOK, nil)
		return
	}
	writeData(w, http.StatusOK, mapDiscountCode(dc))
}

// ListDiscounts returns the full issuance history.
func (h *Handler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	codes := h.store.ListDiscountCodes()
	out := make([]DiscountCodeResponse, len(codes))
	for i, dc := range codes {
		out[i] = mapDiscountCode(dc)
	}
	writeData(w, http.StatusOK, out)
}

// GenerateDiscount force-issues a code, reporting why it cannot when the
// threshold conditions are not met.
func (h *Handler) GenerateDiscount(w http.ResponseWriter, r *http.Request) {
	dc, err := h.store.GenerateDiscountCode()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeData(w, http.StatusCreated, mapDiscountCode(dc))
}

// Analytics returns the aggregate snapshot.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, mapAnalytics(h.store.Analytics()))
}

// mapCart joins cart lines with current product details so clients can render
// names and prices without extra round trips.
func (h *Handler) mapCart(cart store.Cart) CartResponse {
	items := make([]CartItemResponse, len(cart.Items))
	for i, it := range cart.Items {
		item := CartItemResponse{ProductID: it.ProductID, Quantity: it.Quantity}
		if p, ok := h.store.GetProduct(it.ProductID); ok {
			pr := mapProduct(p)
			item.Product = &pr
		}
		items[i] = item
	}
	return CartResponse{
		ID:        cart.ID,
		Items:     items,
		CreatedAt: cart.CreatedAt.Format(time.RFC3339),
		UpdatedAt: cart.UpdatedAt.Format(time.RFC3339),
	}
}

// writeStoreError maps store sentinels onto HTTP statuses: absent entities
// are 404, precondition failures are 400.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrCartNotFound),
		errors.Is(err, store.ErrItemNotFound):
		status = http.StatusNotFound
	}
	writeError(w, status, err.Error())
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, Response{Success: true, Data: v})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
