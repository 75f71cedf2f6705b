package api

import (
	"fmt"
	"net/http"

	"bookcourier/internal/auth"
	"bookcourier/internal/models"
)

// CreateCheckoutSession handles POST /payment-checkout-sessions. The order
// must belong to the principal and still be unpaid.
func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Store.Orders.ByID(r.Context(), req.OrderID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateCheckoutSession: %v", err))
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
	if order.PaymentStatus == models.PaymentStatusPaid {
		h.respondJSON(w, http.StatusOK, map[string]string{"status": models.ConfirmStatusAlreadyProcessed})
		return
	}

	book, err := h.Store.Books.ByID(r.Context(), order.BookID)
	if err != nil || book == nil {
		h.Logger.Error("API", fmt.Sprintf("CreateCheckoutSession: book %s lookup failed: %v", order.BookID, err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	checkout, err := h.Checkout.CreateSession(r.Context(), order, book)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateCheckoutSession: %v", err))
		http.Error(w, "failed to create checkout session", http.StatusBadGateway)
		return
	}

	if _, err := h.Store.Orders.SetSessionID(r.Context(), order.ID, checkout.SessionID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateCheckoutSession: failed to store session id: %v", err))
	}

	h.respondJSON(w, http.StatusCreated, checkout)
}

// ConfirmPayment handles PATCH /payment-success: the idempotent
// confirmation flow. The response carries an explicit status variant so
// "already processed" is distinguishable from "just recorded".
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req models.ConfirmRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.Payments.Confirm(r.Context(), req.SessionID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ConfirmPayment: %v", err))
		http.Error(w, "failed to confirm payment", http.StatusBadGateway)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// PaymentsHistory handles GET /payments-history: the principal's settled
// payments, newest first.
func (h *Handler) PaymentsHistory(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Store.Payments.ByCustomer(r.Context(), auth.PrincipalEmail(r.Context()))
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("PaymentsHistory: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, payments)
}
