package prescription

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"vit-healthcare/internal/triage"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type startResponse struct {
	OK           bool          `json:"ok"`
	RiskScore    int           `json:"risk_score"`
	Message      string        `json:"message,omitempty"`
	Similarity   float64       `json:"similarity,omitempty"`
	Prescription *Prescription `json:"prescription,omitempty"`
}

// StartPrescription handles the form-encoded prescription request and maps
// pipeline outcomes onto HTTP statuses: escalation and recommendation are
// 200, "no match" is 404, embedding outage is 503.
func (h *Handler) StartPrescription(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	sex := r.FormValue("sex")
	symptoms := r.FormValue("symptoms")
	if name == "" || sex == "" || symptoms == "" {
		http.Error(w, "name, sex and symptoms are required", http.StatusBadRequest)
		return
	}

	age, err := strconv.Atoi(r.FormValue("age"))
	if err != nil || age < 0 {
		http.Error(w, "Invalid age", http.StatusBadRequest)
		return
	}

	req := Request{
		Name:               name,
		Age:                age,
		Sex:                sex,
		BloodGroup:         r.FormValue("blood_group"),
		Symptoms:           symptoms,
		AdditionalSymptoms: r.FormValue("additional_symptoms"),
		PatientEmail:       r.FormValue("patient_email"),
	}

	res, err := h.svc.Generate(r.Context(), req)
	switch {
	case errors.Is(err, triage.ErrNoMatch):
		http.Error(w, "No match found", http.StatusNotFound)
		return
	case errors.Is(err, ErrUnavailable):
		http.Error(w, "Embedding service unavailable, please try again later", http.StatusServiceUnavailable)
		return
	case err != nil:
		http.Error(w, "Processing failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := startResponse{
		OK:           true,
		RiskScore:    res.RiskScore,
		Message:      res.Message,
		Similarity:   res.Similarity,
		Prescription: res.Prescription,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/prescription/start", h.StartPrescription)
}
