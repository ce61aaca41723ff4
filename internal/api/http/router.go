package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router needs.
type Handlers struct {
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Customer *CustomerHandler
	Shipping *ShippingHandler
	Checkout *CheckoutHandler
	Contract *ContractHandler
	Payment  *PaymentHandler
}

// NewRouter builds the full route table. Auth is enforced per subrouter;
// the rate limiter and request logging wrap everything.
func NewRouter(h Handlers, auth *AuthMiddleware, limiter *RateLimiter) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogging)
	r.Use(limiter.Limit)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/products", h.Catalog.List).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", h.Catalog.Get).Methods(http.MethodGet)

	// Presigned-style document upload. The one-time token in the path is
	// the capability; see LocalStorageService.RedeemUploadToken.
	api.HandleFunc("/documents/upload/{token}", h.Customer.HandleDocumentUpload).Methods(http.MethodPut)

	// Admin routes. Registered before the private catch-all because mux
	// does not fall through a matched subrouter.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth.RequireAdmin)

	admin.HandleFunc("/products", h.Catalog.Create).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", h.Catalog.Update).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", h.Catalog.Delete).Methods(http.MethodDelete)

	// Authenticated routes
	private := api.NewRoute().Subrouter()
	private.Use(auth.RequireAuth)

	private.HandleFunc("/profile", h.Customer.GetProfile).Methods(http.MethodGet)
	private.HandleFunc("/profile", h.Customer.CompleteProfile).Methods(http.MethodPut)
	private.HandleFunc("/profile/documents", h.Customer.RequestDocumentUpload).Methods(http.MethodPost)
	private.HandleFunc("/profile/documents/confirm", h.Customer.ConfirmDocumentUpload).Methods(http.MethodPost)
	private.HandleFunc("/documents/download/{hash}", h.Customer.HandleDocumentDownload).Methods(http.MethodGet)

	private.HandleFunc("/shipping/resolve", h.Shipping.Resolve).Methods(http.MethodPost)
	private.HandleFunc("/shipping/quote", h.Shipping.Quote).Methods(http.MethodGet)

	private.HandleFunc("/checkout", h.Checkout.Start).Methods(http.MethodPost)
	private.HandleFunc("/checkout/{id}", h.Checkout.Get).Methods(http.MethodGet)
	private.HandleFunc("/checkout/{id}/address", h.Checkout.SetAddress).Methods(http.MethodPut)
	private.HandleFunc("/checkout/{id}/dates", h.Checkout.SetDates).Methods(http.MethodPut)
	private.HandleFunc("/checkout/{id}/advance", h.Checkout.Advance).Methods(http.MethodPost)
	private.HandleFunc("/orders", h.Checkout.ListOrders).Methods(http.MethodGet)

	private.HandleFunc("/checkout/{session_id}/contract", h.Contract.Render).Methods(http.MethodGet)
	private.HandleFunc("/contract/scroll", h.Contract.ReportScroll).Methods(http.MethodPost)
	private.HandleFunc("/contract/accept", h.Contract.Accept).Methods(http.MethodPost)
	private.HandleFunc("/contract/status", h.Contract.Status).Methods(http.MethodGet)
	private.HandleFunc("/contract", h.Contract.Invalidate).Methods(http.MethodDelete)

	private.HandleFunc("/checkout/{session_id}/payment/intent", h.Payment.EnsureIntent).Methods(http.MethodPost)
	private.HandleFunc("/checkout/{session_id}/payment/pix", h.Payment.PayWithPix).Methods(http.MethodPost)
	private.HandleFunc("/checkout/{session_id}/payment/pix/confirm", h.Payment.ConfirmPix).Methods(http.MethodPost)
	private.HandleFunc("/checkout/{session_id}/payment/debit-card", h.Payment.SelectDebitCard).Methods(http.MethodPost)

	return r
}
