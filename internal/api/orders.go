package api

import (
	"fmt"
	"net/http"
	"time"

	"bookcourier/internal/auth"
	"bookcourier/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CreateOrder handles POST /book-orders. The initial state is forced
// server-side: pending, unpaid, unreviewed, order date now. The customer
// email comes from the principal and the author email and price are
// snapshotted from the book row, never from the request body.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	book, err := h.Store.Books.ByID(r.Context(), req.BookID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateOrder: book lookup failed: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if book == nil {
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}

	order := &models.Order{
		ID:              uuid.NewString(),
		CustomerEmail:   auth.PrincipalEmail(r.Context()),
		BookAuthorEmail: book.AuthorEmail,
		BookID:          book.ID,
		BookName:        book.BookName,
		Price:           book.Price,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusUnpaid,
		ReviewStatus:    false,
		OrderDate:       time.Now().UTC(),
	}

	if err := h.Store.Orders.Create(r.Context(), order); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateOrder: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.Logger.Info("API", fmt.Sprintf("CreateOrder: order %s placed by %s for book %s", order.ID, order.CustomerEmail, order.BookID))

	if h.Kafka != nil {
		if err := h.Kafka.PublishOrderCreated(*order); err != nil {
			h.Logger.Error("KAFKA", fmt.Sprintf("CreateOrder: publish failed: %v", err))
		}
	}

	h.respondJSON(w, http.StatusCreated, order)
}

// MyOrders handles GET /my-orders: the principal's orders, newest first.
func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.Orders.ByCustomer(r.Context(), auth.PrincipalEmail(r.Context()))
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("MyOrders: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, orders)
}

// LibraryOrders handles GET /orders (librarian): orders placed against the
// principal's books.
func (h *Handler) LibraryOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.Orders.ByAuthor(r.Context(), auth.PrincipalEmail(r.Context()))
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("LibraryOrders: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /orders/{id}: visible to the customer who placed it
// and the librarian whose book it is for.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.Store.Orders.ByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetOrder: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if order == nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	email := auth.PrincipalEmail(r.Context())
	if order.CustomerEmail != email && order.BookAuthorEmail != email {
		http.Error(w, "forbidden access", http.StatusForbidden)
		return
	}
	h.respondJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus handles PATCH /orders/{id} (librarian): fulfilment
// status only; payment status is owned by the confirmation flow.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.OrderStatusUpdate
	if err := h.decodeAndValidate(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Store.Orders.ByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateOrderStatus: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if order == nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	email := auth.PrincipalEmail(r.Context())
	if order.BookAuthorEmail != email {
		role, err := h.Store.Users.RoleByEmail(r.Context(), email)
		if err != nil || role != models.RoleAdmin {
			http.Error(w, "forbidden access", http.StatusForbidden)
			return
		}
	}

	if _, err := h.Store.Orders.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateOrderStatus: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	order.Status = req.Status

	if h.Kafka != nil {
		if err := h.Kafka.PublishOrderStatusChanged(*order); err != nil {
			h.Logger.Error("KAFKA", fmt.Sprintf("UpdateOrderStatus: publish failed: %v", err))
		}
	}

	h.respondJSON(w, http.StatusOK, order)
}

// CancelOrder handles PATCH /book-orders/{id}: a customer cancelling their
// own order while it is still pending and unpaid.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.Store.Orders.ByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CancelOrder: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if order == nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}
	if order.CustomerEmail != auth.PrincipalEmail(r.Context()) {
		http.Error(w, "forbidden access", http.StatusForbidden)
		return
	}
	if order.Status != models.OrderStatusPending || order.PaymentStatus == models.PaymentStatusPaid {
		http.Error(w, "only pending unpaid orders can be cancelled", http.StatusConflict)
		return
	}

	if _, err := h.Store.Orders.UpdateStatus(r.Context(), id, models.OrderStatusCancelled); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CancelOrder: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	order.Status = models.OrderStatusCancelled

	if h.Kafka != nil {
		if err := h.Kafka.PublishOrderStatusChanged(*order); err != nil {
			h.Logger.Error("KAFKA", fmt.Sprintf("CancelOrder: publish failed: %v", err))
		}
	}

	h.respondJSON(w, http.StatusOK, order)
}
