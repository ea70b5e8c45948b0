package prescription

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"vit-healthcare/internal/knowledge"
	"vit-healthcare/internal/triage"
)

// Evaluator is the triage pipeline entry point the service depends on.
type Evaluator interface {
	Evaluate(ctx context.Context, patient triage.Patient) (triage.Decision, error)
}

// ReportService renders and delivers the prescription artifact.
type ReportService interface {
	SendPrescription(ctx context.Context, to string, p Prescription) error
}

// ErrUnavailable signals that the embedding service could not produce a
// vector for this request. Callers should offer a retry or a human fallback
// rather than treating it as "no match".
var ErrUnavailable = errors.New("embedding unavailable")

// Request is one prescription generation request.
type Request struct {
	Name               string
	Age                int
	Sex                string
	BloodGroup         string
	Symptoms           string
	AdditionalSymptoms string
	PatientEmail       string
}

// Result is the outcome handed back to the HTTP layer.
type Result struct {
	RiskScore    int
	Escalated    bool
	Message      string
	Similarity   float64
	Prescription *Prescription
}

type Service struct {
	pipeline  Evaluator
	reportSvc ReportService
}

func NewService(pipeline Evaluator, reportSvc ReportService) *Service {
	return &Service{
		pipeline:  pipeline,
		reportSvc: reportSvc,
	}
}

// Generate evaluates the patient and, for a recommendation, builds the
// prescription and dispatches it by email in the background. Delivery is best
// effort; the caller gets the prescription either way.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	decision, err := s.pipeline.Evaluate(ctx, triage.Patient{
		Age:                req.Age,
		Sex:                req.Sex,
		Symptoms:           req.Symptoms,
		AdditionalSymptoms: req.AdditionalSymptoms,
	})
	if err != nil {
		return nil, err
	}

	switch decision.Outcome {
	case triage.OutcomeEscalate:
		return &Result{
			RiskScore: decision.Risk,
			Escalated: true,
			Message:   "High risk detected. Book ambulance.",
		}, nil

	case triage.OutcomeUnavailable:
		return nil, ErrUnavailable

	case triage.OutcomeRecommend:
		p := buildPrescription(req, decision.Match.Record)

		if req.PatientEmail != "" && s.reportSvc != nil {
			go func(to string, p Prescription) {
				// Detached context: delivery outlives the request.
				if err := s.reportSvc.SendPrescription(context.Background(), to, p); err != nil {
					fmt.Printf("Failed to send prescription %s: %v\n", p.ID, err)
				}
			}(req.PatientEmail, p)
		}

		return &Result{
			RiskScore:    decision.Risk,
			Similarity:   decision.Match.Similarity,
			Prescription: &p,
		}, nil
	}

	return nil, errors.Errorf("unexpected decision outcome %q", decision.Outcome)
}

func buildPrescription(req Request, rec *knowledge.Record) Prescription {
	return Prescription{
		ID:             newID("P"),
		Date:           time.Now().Format("2006-01-02"),
		Name:           req.Name,
		Age:            req.Age,
		Sex:            req.Sex,
		BloodGroup:     req.BloodGroup,
		Condition:      rec.Condition,
		GenericName:    rec.GenericName,
		BrandNames:     rec.BrandNames,
		Precautions:    rec.Precautions,
		Dosage:         rec.Dosage,
		Duration:       rec.Duration,
		AgeSuitability: rec.AgeSuitability,
	}
}

func newID(prefix string) string {
	const digits = "0123456789"
	b := make([]byte, 6)
	for i := range b {
		b[i] = digits[rand.Intn(len(digits))]
	}
	return prefix + string(b)
}
