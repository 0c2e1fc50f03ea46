package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/example/quickbasket/internal/api/middleware"
	"github.com/example/quickbasket/internal/catalog"
	"github.com/example/quickbasket/internal/checkout"
	"github.com/example/quickbasket/internal/domain/cart"
	"github.com/example/quickbasket/internal/domain/order"
	"github.com/example/quickbasket/internal/domain/tracking"
	"github.com/example/quickbasket/internal/identity"
)

type Handlers struct {
	catalog  catalog.Provider
	carts    *cart.Manager
	checkout *checkout.Service
	orders   *order.Service
	users    *identity.Provider
}

func NewHandlers(cat catalog.Provider, carts *cart.Manager, checkoutSvc *checkout.Service, orders *order.Service, users *identity.Provider) *Handlers {
	return &Handlers{
		catalog:  cat,
		carts:    carts,
		checkout: checkoutSvc,
		orders:   orders,
		users:    users,
	}
}

// Product Handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []catalog.Product
		err      error
	)

	q := r.URL.Query()
	switch {
	case q.Get("q") != "":
		products, err = h.catalog.SearchProducts(r.Context(), q.Get("q"))
	case q.Get("category") != "":
		products, err = h.catalog.ListProductsByCategory(r.Context(), q.Get("category"))
	case q.Get("featured") == "true":
		products, err = h.catalog.ListFeaturedProducts(r.Context())
	default:
		products, err = h.catalog.ListProducts(r.Context())
	}
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/products/")

	product, ok, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		// Fall back to slug lookup so product page URLs work too.
		product, ok, err = h.catalog.GetProductBySlug(r.Context(), id)
		if err != nil {
			respondJSONError(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	if !ok {
		respondJSONError(w, "product not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Cart Handlers

// cartResponse is the cart with its resolved items and derived totals.
type cartResponse struct {
	Items  []cart.ItemView `json:"items"`
	Totals cart.Totals     `json:"totals"`
}

func (h *Handlers) cartJSON(w http.ResponseWriter, r *http.Request, s *cart.Session) {
	respondJSON(w, http.StatusOK, cartResponse{
		Items:  s.Items(r.Context()),
		Totals: s.Totals(r.Context()),
	})
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	s := h.carts.Session(r.Context(), middleware.GetUserID(r.Context()))
	h.cartJSON(w, r, s)
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s := h.carts.Session(r.Context(), middleware.GetUserID(r.Context()))
	if err := s.AddItem(r.Context(), req.ProductID, req.Quantity); err != nil {
		respondDomainError(w, err)
		return
	}
	h.cartJSON(w, r, s)
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID := extractPathParam(r.URL.Path, "/api/cart/items/")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s := h.carts.Session(r.Context(), middleware.GetUserID(r.Context()))
	if err := s.SetQuantity(r.Context(), productID, req.Quantity); err != nil {
		respondDomainError(w, err)
		return
	}
	h.cartJSON(w, r, s)
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID := extractPathParam(r.URL.Path, "/api/cart/items/")

	s := h.carts.Session(r.Context(), middleware.GetUserID(r.Context()))
	if err := s.RemoveItem(r.Context(), productID); err != nil {
		respondDomainError(w, err)
		return
	}
	h.cartJSON(w, r, s)
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := h.carts.Session(r.Context(), middleware.GetUserID(r.Context()))
	if err := s.Clear(r.Context()); err != nil {
		respondDomainError(w, err)
		return
	}
	h.cartJSON(w, r, s)
}

// Checkout Handler

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	var form checkout.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	userID := middleware.GetUserID(r.Context())
	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s := h.carts.Session(r.Context(), userID)
	o, err := h.checkout.PlaceOrder(r.Context(), s, &user, &form)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, o)
}

// Order Handlers

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	var (
		orders []*order.Order
		err    error
	)
	if isAdmin(r) && r.URL.Query().Get("all") == "true" {
		orders, err = h.orders.ListAll(r.Context())
	} else {
		orders, err = h.orders.ListByUser(r.Context(), middleware.GetUserID(r.Context()))
	}
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadAuthorizedOrder(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *Handlers) GetOrderTracking(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.loadAuthorizedOrder(w, r); !ok {
		return
	}

	t, err := h.orders.Tracking(r.Context(), orderIDFromPath(r.URL.Path))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadAuthorizedOrder(w, r)
	if !ok {
		return
	}

	updated, err := h.orders.SetStatus(r.Context(), o.ID, order.StatusCancelled, o.Version)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// SetOrderStatus is the admin transition endpoint. The caller supplies the
// version it last read; a stale version is rejected with a conflict.
func (h *Handlers) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status  string `json:"status"`
		Version int    `json:"version"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	next, err := order.ParseStatus(req.Status)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	updated, err := h.orders.SetStatus(r.Context(), orderIDFromPath(r.URL.Path), next, req.Version)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) AssignDeliveryPartner(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Partner  tracking.Partner   `json:"partner"`
		Location *tracking.Location `json:"location,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	orderID := orderIDFromPath(r.URL.Path)
	if err := h.orders.AssignDeliveryPartner(r.Context(), orderID, req.Partner, req.Location); err != nil {
		respondDomainError(w, err)
		return
	}

	t, err := h.orders.Tracking(r.Context(), orderID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// loadAuthorizedOrder loads the order in the path and enforces that the
// caller owns it or is an admin.
func (h *Handlers) loadAuthorizedOrder(w http.ResponseWriter, r *http.Request) (*order.Order, bool) {
	o, err := h.orders.Get(r.Context(), orderIDFromPath(r.URL.Path))
	if err != nil {
		respondDomainError(w, err)
		return nil, false
	}

	if o.UserID != middleware.GetUserID(r.Context()) && !isAdmin(r) {
		respondJSONError(w, "forbidden", http.StatusForbidden)
		return nil, false
	}
	return o, true
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondDomainError maps domain errors onto HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	var vErrs validator.ValidationErrors

	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, tracking.ErrNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, identity.ErrUserNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, order.ErrVersionConflict),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrTerminalStatus):
		respondJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, order.ErrUnknownStatus),
		errors.Is(err, cart.ErrInvalidProduct),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrUnknownAddress),
		errors.Is(err, checkout.ErrIncompleteAddress),
		errors.As(err, &vErrs):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}

// orderIDFromPath extracts the order id from /api/orders/{id}[/suffix].
func orderIDFromPath(path string) string {
	id := strings.TrimPrefix(path, "/api/orders/")
	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}
	return id
}

// isAdmin checks if the current user has admin role
func isAdmin(r *http.Request) bool {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		return false
	}
	return claims.Role == "admin"
}
