package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"bookcourier/internal/logger"
	"bookcourier/internal/models"
	"bookcourier/internal/payment"
	"bookcourier/internal/store"

	"github.com/go-playground/validator/v10"
)

// OrderPublisher streams order lifecycle events; nil disables publishing.
type OrderPublisher interface {
	PublishOrderCreated(order models.Order) error
	PublishOrderStatusChanged(order models.Order) error
}

// Handler owns the HTTP surface. Everything it needs is injected once at
// startup.
type Handler struct {
	Store    *store.Store
	Payments *payment.Service
	Checkout payment.Provider
	Kafka    OrderPublisher
	Logger   *logger.Logger

	validate *validator.Validate
}

func NewHandler(st *store.Store, payments *payment.Service, checkout payment.Provider, kafka OrderPublisher, log *logger.Logger) *Handler {
	return &Handler{
		Store:    st,
		Payments: payments,
		Checkout: checkout,
		Kafka:    kafka,
		Logger:   log,
		validate: validator.New(),
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to encode response: %v", err))
	}
}

// decodeAndValidate parses the JSON body into v and runs the validator
// tags. The caller answers 400 on error.
func (h *Handler) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := h.validate.Struct(v); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// queryInt coerces a numeric query parameter; absent or malformed values
// mean "no bound".
func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func queryFloat(r *http.Request, name string) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
