package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/signintech/gopdf"

	"vit-healthcare/internal/prescription"
)

// MailClient is the delivery collaborator; it does not need to know how the
// artifact is rendered.
type MailClient interface {
	SendDocument(to, subject, body string, file []byte, filename string) error
}

type Service struct {
	mail MailClient
}

func NewService(mail MailClient) *Service {
	return &Service{mail: mail}
}

// SendPrescription renders the prescription to PDF and emails it to the
// patient.
func (s *Service) SendPrescription(ctx context.Context, to string, p prescription.Prescription) error {
	fmt.Printf("Generating PDF for prescription %s...\n", p.ID)
	pdfBytes, err := renderPDF(p)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Prescription %s - Vit Healthcare", p.ID)
	body := fmt.Sprintf("Dear %s,\n\nYour AI-generated prescription for %s is attached.\n\nStay healthy,\nVit Healthcare", p.Name, p.Condition)
	fileName := fmt.Sprintf("prescription_%s.pdf", p.ID)

	if err := s.mail.SendDocument(to, subject, body, pdfBytes, fileName); err != nil {
		fmt.Printf("Error sending prescription email: %v\n", err)
		return err
	}
	fmt.Println("Prescription email sent successfully.")
	return nil
}

func renderPDF(p prescription.Prescription) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	// Try multiple common paths for the DejaVu font
	fontPaths := []string{
		"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF, ensure ttf-dejavu is installed: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 16); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Vit Healthcare Prescription")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	for _, field := range p.Fields() {
		line := fmt.Sprintf("%s: %s", field.Key, field.Value)
		lines, _ := pdf.SplitText(line, 500)
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(16)
		}
		if pdf.GetY() > 780 {
			pdf.AddPage()
			pdf.SetY(40)
		}
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}
