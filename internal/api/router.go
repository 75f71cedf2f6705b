package api

import (
	"fmt"
	"net/http"
	"time"

	"bookcourier/internal/auth"
	"bookcourier/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires every route behind its guard chain: the identity
// middleware first, then the role gate where a route needs one.
func NewRouter(h *Handler, verifier auth.Verifier, roles auth.RoleStore) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(h.requestLogger)

	authed := auth.Middleware(verifier)
	librarian := auth.RequireRole(roles, models.RoleLibrarian, models.RoleAdmin)
	admin := auth.RequireRole(roles, models.RoleAdmin)

	// Public surface.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("book courier is working"))
	})
	r.Post("/users", h.Register)
	r.Get("/all-books", h.AllBooks)
	r.Get("/books-library", h.LatestBooks)
	r.Get("/book-details/{id}", h.BookDetails)
	r.Get("/book-review", h.BookReviews)
	r.Get("/coverage", h.Coverage)
	r.Get("/all-data-count", h.DataCount)

	// Any authenticated principal.
	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Get("/users/{email}/role", h.GetUserRole)
		r.Get("/my-orders", h.MyOrders)
		r.Post("/book-orders", h.CreateOrder)
		r.Patch("/book-orders/{id}", h.CancelOrder)
		r.Get("/orders/{id}", h.GetOrder)
		r.Post("/payment-checkout-sessions", h.CreateCheckoutSession)
		r.Patch("/payment-success", h.ConfirmPayment)
		r.Get("/payments-history", h.PaymentsHistory)
		r.Post("/user-wishlist", h.AddWishlistItem)
		r.Get("/user-wishlist", h.GetWishlist)
		r.Delete("/user-wishlist", h.RemoveWishlistItem)
		r.Get("/book-review-permission/{bookId}", h.ReviewPermission)
		r.Post("/book-review", h.SubmitReview)
	})

	// Librarian surface.
	r.Group(func(r chi.Router) {
		r.Use(authed, librarian)
		r.Post("/books", h.CreateBook)
		r.Patch("/book-details/{id}", h.PatchBook)
		r.Get("/orders", h.LibraryOrders)
		r.Patch("/orders/{id}", h.UpdateOrderStatus)
	})

	// Admin surface.
	r.Group(func(r chi.Router) {
		r.Use(authed, admin)
		r.Get("/users", h.ListUsers)
		r.Patch("/users/{email}/role", h.UpdateUserRole)
		r.Get("/all-books-admin", h.AllBooksAdmin)
		r.Delete("/books/{id}", h.DeleteBook)
	})

	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.Logger.LogAPI(r.Method, r.URL.Path, fmt.Sprintf("%d", ww.Status()), time.Since(start).String())
	})
}
