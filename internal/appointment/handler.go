package appointment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	pincode := r.URL.Query().Get("pincode")
	specialty := r.URL.Query().Get("specialty")

	doctors := h.svc.Doctors(pincode, specialty)
	if doctors == nil {
		doctors = []Doctor{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"ok":      true,
		"doctors": doctors,
	})
}

func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.DoctorID == "" || req.Time == "" {
		http.Error(w, "doctor_id and time are required", http.StatusBadRequest)
		return
	}

	appt, err := h.svc.Book(r.Context(), req)
	if err != nil {
		http.Error(w, "Booking failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"ok":          true,
		"appointment": appt,
	})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/doctors", h.ListDoctors)
	r.Post("/appointment/book", h.BookAppointment)
}
