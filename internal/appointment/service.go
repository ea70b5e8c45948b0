package appointment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Mailer sends the confirmation message.
type Mailer interface {
	SendMessage(to, subject, body string) error
}

var defaultDoctors = []Doctor{
	{ID: "D100", Name: "Dr. Priya Sharma", Specialty: "general", Pincode: "560001"},
	{ID: "D101", Name: "Dr. Arjun Rao", Specialty: "cardiology", Pincode: "560001"},
	{ID: "D200", Name: "Dr. Sangeeta Das", Specialty: "general", Pincode: "110001"},
}

var serviceAreas = map[string]string{
	"560001": "Bangalore Central",
	"110001": "New Delhi Central",
	"400001": "Mumbai Fort",
	"700001": "Kolkata Central",
	"380001": "Ahmedabad Central",
}

// Service books appointments against a static doctor directory. State lives
// in memory for the process lifetime.
type Service struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]Appointment
	doctors      []Doctor
	mail         Mailer
}

func NewService(mail Mailer) *Service {
	return &Service{
		appointments: make(map[uuid.UUID]Appointment),
		doctors:      defaultDoctors,
		mail:         mail,
	}
}

// Doctors lists doctors, optionally filtered by pincode and specialty.
func (s *Service) Doctors(pincode, specialty string) []Doctor {
	var out []Doctor
	for _, d := range s.doctors {
		if pincode != "" && d.Pincode != pincode {
			continue
		}
		if specialty != "" && !strings.EqualFold(d.Specialty, specialty) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// AreaName resolves a serviced pincode to its center name.
func (s *Service) AreaName(pincode string) (string, bool) {
	name, ok := serviceAreas[pincode]
	return name, ok
}

type BookRequest struct {
	DoctorID     string `json:"doctor_id"`
	PatientEmail string `json:"patient_email"`
	Time         string `json:"time"`
	Type         string `json:"type"`
}

// Book records the appointment and sends a confirmation email. Booking
// succeeds even if the email fails; delivery problems are logged.
func (s *Service) Book(ctx context.Context, req BookRequest) (*Appointment, error) {
	var doctor *Doctor
	for i := range s.doctors {
		if s.doctors[i].ID == req.DoctorID {
			doctor = &s.doctors[i]
			break
		}
	}
	if doctor == nil {
		return nil, errors.Errorf("unknown doctor %q", req.DoctorID)
	}

	apptType := strings.ToLower(req.Type)
	if apptType != TypeVirtual && apptType != TypeInPerson {
		return nil, errors.Errorf("invalid appointment type %q", req.Type)
	}

	appt := Appointment{
		ID:           uuid.New(),
		DoctorID:     doctor.ID,
		DoctorName:   doctor.Name,
		PatientEmail: req.PatientEmail,
		Time:         req.Time,
		Type:         apptType,
		Pincode:      doctor.Pincode,
		CreatedAt:    time.Now(),
	}
	if apptType == TypeVirtual {
		appt.MeetingLink = meetingLink(doctor.Name, req.Time)
	}

	s.mu.Lock()
	s.appointments[appt.ID] = appt
	s.mu.Unlock()

	if req.PatientEmail != "" && s.mail != nil {
		if err := s.sendConfirmation(appt); err != nil {
			fmt.Printf("Appointment email error: %v\n", err)
		}
	}

	return &appt, nil
}

// Get returns a booked appointment by ID.
func (s *Service) Get(id uuid.UUID) (Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.appointments[id]
	return appt, ok
}

func (s *Service) sendConfirmation(appt Appointment) error {
	var location string
	if appt.Type == TypeVirtual {
		location = fmt.Sprintf("Virtual appointment. Join link: %s", appt.MeetingLink)
	} else {
		location = fmt.Sprintf("Vit Healthcare Center, Pincode: %s", appt.Pincode)
	}

	body := fmt.Sprintf(`Hello,

Your appointment with %s is confirmed.
Type: %s
When: %s
Location: %s

Best regards,
Vit Healthcare
`, appt.DoctorName, title(appt.Type), appt.Time, location)

	return s.mail.SendMessage(appt.PatientEmail, "Appointment Confirmation - Vit Healthcare", body)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func meetingLink(doctor, appointmentTime string) string {
	return fmt.Sprintf("https://webex.example.com/meet/%s-%s",
		strings.ReplaceAll(doctor, " ", ""),
		strings.ReplaceAll(appointmentTime, " ", "T"))
}
