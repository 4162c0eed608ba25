// Package report renders appointment documentation as PDF for download into
// practice records.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/signintech/gopdf"

	"vetscribe-server/internal/models"
)

// Common DejaVuSans locations across Linux distributions.
var fontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

const (
	pageTextWidth = 500
	lineHeight    = 12
	bottomMargin  = 790
)

// SOAPNotePDF renders an appointment's SOAP note, with the signalment header,
// as a single PDF document.
func SOAPNotePDF(appt models.Appointment) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := loadFont(&pdf); err != nil {
		return nil, err
	}

	if err := pdf.SetFont("DejaVu", "", 18); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("SOAP Note - %s", appt.PatientName))
	pdf.Br(26)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	header := []string{
		fmt.Sprintf("Date: %s", appt.Date),
		fmt.Sprintf("Patient: %s (%s, %s)", appt.PatientName, appt.Species, appt.Breed),
		fmt.Sprintf("Client: %s", appt.ClientName),
		fmt.Sprintf("Appointment Type: %s", appt.AppointmentType),
	}
	for _, line := range header {
		pdf.Cell(nil, line)
		pdf.Br(14)
	}
	pdf.Br(10)

	if err := pdf.SetFont("DejaVu", "", 10); err != nil {
		return nil, err
	}
	if err := writeWrapped(&pdf, appt.SOAPNote); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func loadFont(pdf *gopdf.GoPdf) error {
	var lastErr error
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return fmt.Errorf("failed to load font for PDF, ensure the DejaVu fonts are installed: %w", lastErr)
}

func writeWrapped(pdf *gopdf.GoPdf, text string) error {
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			pdf.Br(lineHeight)
			continue
		}
		lines, err := pdf.SplitText(paragraph, pageTextWidth)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if pdf.GetY() > bottomMargin {
				pdf.AddPage()
				pdf.SetY(30)
			}
			pdf.Cell(nil, line)
			pdf.Br(lineHeight)
		}
	}
	return nil
}
