package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) SendMessage(to, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body
	return nil
}

func TestDoctorsFilter(t *testing.T) {
	svc := NewService(nil)

	all := svc.Doctors("", "")
	assert.Len(t, all, 3)

	bangalore := svc.Doctors("560001", "")
	assert.Len(t, bangalore, 2)

	cardio := svc.Doctors("560001", "cardiology")
	require.Len(t, cardio, 1)
	assert.Equal(t, "Dr. Arjun Rao", cardio[0].Name)

	assert.Empty(t, svc.Doctors("400001", ""))
}

func TestAreaName(t *testing.T) {
	svc := NewService(nil)

	name, ok := svc.AreaName("560001")
	assert.True(t, ok)
	assert.Equal(t, "Bangalore Central", name)

	_, ok = svc.AreaName("999999")
	assert.False(t, ok)
}

func TestBookVirtualAppointment(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(mailer)

	appt, err := svc.Book(context.Background(), BookRequest{
		DoctorID:     "D100",
		PatientEmail: "user@example.com",
		Time:         "2026-09-01 10:00",
		Type:         "virtual",
	})

	require.NoError(t, err)
	assert.Equal(t, "Dr. Priya Sharma", appt.DoctorName)
	assert.Equal(t, TypeVirtual, appt.Type)
	assert.Equal(t, "https://webex.example.com/meet/Dr.PriyaSharma-2026-09-01T10:00", appt.MeetingLink)
	assert.NotEqual(t, appt.ID.String(), "00000000-0000-0000-0000-000000000000")

	assert.Equal(t, "user@example.com", mailer.to)
	assert.Equal(t, "Appointment Confirmation - Vit Healthcare", mailer.subject)
	assert.Contains(t, mailer.body, "Join link: "+appt.MeetingLink)

	stored, ok := svc.Get(appt.ID)
	require.True(t, ok)
	assert.Equal(t, appt.ID, stored.ID)
}

func TestBookInPersonAppointment(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(mailer)

	appt, err := svc.Book(context.Background(), BookRequest{
		DoctorID:     "D200",
		PatientEmail: "user@example.com",
		Time:         "2026-09-01 10:00",
		Type:         "in_person",
	})

	require.NoError(t, err)
	assert.Empty(t, appt.MeetingLink)
	assert.Contains(t, mailer.body, "Pincode: 110001")
}

func TestBookUnknownDoctor(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Book(context.Background(), BookRequest{DoctorID: "D999", Time: "x", Type: "virtual"})
	assert.Error(t, err)
}

func TestBookInvalidType(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Book(context.Background(), BookRequest{DoctorID: "D100", Time: "x", Type: "telepathic"})
	assert.Error(t, err)
}
