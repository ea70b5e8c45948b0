package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Pincode   string `json:"pincode"`
}

const (
	TypeVirtual  = "virtual"
	TypeInPerson = "in_person"
)

type Appointment struct {
	ID           uuid.UUID `json:"id"`
	DoctorID     string    `json:"doctor_id"`
	DoctorName   string    `json:"doctor_name"`
	PatientEmail string    `json:"patient_email"`
	Time         string    `json:"time"`
	Type         string    `json:"type"`
	Pincode      string    `json:"pincode"`
	MeetingLink  string    `json:"meeting_link,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
