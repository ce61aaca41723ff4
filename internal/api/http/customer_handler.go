package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/service"
	"brecho-backend/internal/storage"
)

type CustomerHandler struct {
	customerService service.CustomerService
	localStorage    *storage.LocalStorageService
	maxUploadBytes  int64
	allowedTypes    map[string]bool
}

func NewCustomerHandler(customerService service.CustomerService, localStorage *storage.LocalStorageService, maxFileSizeMB int64, allowedTypes []string) *CustomerHandler {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = true
	}
	return &CustomerHandler{
		customerService: customerService,
		localStorage:    localStorage,
		maxUploadBytes:  maxFileSizeMB * 1024 * 1024,
		allowedTypes:    allowed,
	}
}

func (h *CustomerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	customer, err := h.customerService.GetProfile(r.Context(), claims.CustomerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	var input service.ProfileInput
	if !decodeBody(w, r, &input) {
		return
	}

	claims := ClaimsFromContext(r.Context())
	customer, err := h.customerService.CompleteProfile(r.Context(), claims.CustomerID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

type uploadRequestBody struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type uploadRequestResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}

func (h *CustomerHandler) RequestDocumentUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequestBody
	if !decodeBody(w, r, &req) {
		return
	}

	claims := ClaimsFromContext(r.Context())
	uploadURL, key, err := h.customerService.RequestDocumentUpload(r.Context(), claims.CustomerID, req.Filename, req.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadRequestResponse{UploadURL: uploadURL, Key: key})
}

type confirmUploadRequest struct {
	Key string `json:"key"`
}

func (h *CustomerHandler) ConfirmDocumentUpload(w http.ResponseWriter, r *http.Request) {
	var req confirmUploadRequest
	if !decodeBody(w, r, &req) {
		return
	}

	claims := ClaimsFromContext(r.Context())
	if err := h.customerService.ConfirmDocumentUpload(r.Context(), claims.CustomerID, req.Key); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDocumentUpload receives the PUT against a generated upload URL and
// writes the document to local storage. The one-time token in the path is
// the only credential; the storage key comes from the redeemed grant, never
// from the client.
func (h *CustomerHandler) HandleDocumentUpload(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	key, err := h.localStorage.RedeemUploadToken(token)
	if err != nil {
		http.Error(w, "Invalid or expired upload token", http.StatusForbidden)
		return
	}

	if !h.allowedTypes[r.Header.Get("Content-Type")] {
		http.Error(w, "Invalid content type", http.StatusBadRequest)
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := h.localStorage.SaveFile(key, body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleDocumentDownload streams a stored document back by its key. Only
// the owning customer (or an admin) may read it.
func (h *CustomerHandler) HandleDocumentDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	claims := ClaimsFromContext(r.Context())
	ownPrefix := fmt.Sprintf("customer-%d/", claims.CustomerID)
	if !strings.HasPrefix(key, ownPrefix) && claims.Role != domain.RoleAdmin {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}

	file, err := h.localStorage.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".pdf":
		contentType = "application/pdf"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, no-store")
	io.Copy(w, file)
}
