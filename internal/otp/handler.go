package otp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mailer delivers the code to the patient.
type Mailer interface {
	SendMessage(to, subject, body string) error
}

type Handler struct {
	store *Store
	mail  Mailer
}

func NewHandler(store *Store, mail Mailer) *Handler {
	return &Handler{store: store, mail: mail}
}

type requestOTPRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *Handler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req requestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	code, err := h.store.Generate(req.Email)
	if err != nil {
		http.Error(w, "Failed to generate OTP", http.StatusInternalServerError)
		return
	}

	body := fmt.Sprintf(`Dear User,

Your One-Time Password (OTP) for Vit Healthcare verification is: %s

This OTP is valid for 10 minutes. Please do not share this OTP with anyone.

If you did not request this OTP, please ignore this email.

Best regards,
Vit Healthcare Team
`, code)

	if err := h.mail.SendMessage(req.Email, "Your Vit Healthcare OTP", body); err != nil {
		fmt.Printf("Email error (OTP): %v\n", err)
		http.Error(w, "Failed to send OTP email", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.OTP == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if !h.store.Verify(req.Email, req.OTP) {
		http.Error(w, "Invalid or expired OTP", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/otp/request", h.RequestOTP)
	r.Post("/otp/verify", h.VerifyOTP)
}
