package report

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"vetscribe-server/internal/models"
)

func requireFont(t *testing.T) {
	t.Helper()
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			return
		}
	}
	t.Skip("DejaVu fonts not installed")
}

func TestSOAPNotePDF(t *testing.T) {
	requireFont(t)

	appt := models.Appointment{
		ID:              1,
		Date:            "2025-03-14 09:30",
		PatientName:     "Buddy",
		ClientName:      "J. Smith",
		Species:         "Dog",
		Breed:           "Labrador",
		AppointmentType: "Sick Visit",
		SOAPNote:        "SUBJECTIVE: Lethargic 3 days\n\nOBJECTIVE: T 102.1F, HR 90\n\nASSESSMENT: Not documented\n\nPLAN: Supportive care",
	}

	pdfBytes, err := SOAPNotePDF(appt)
	if err != nil {
		t.Fatalf("SOAPNotePDF: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Errorf("output is not a PDF, starts with %q", pdfBytes[:min(8, len(pdfBytes))])
	}
}

func TestSOAPNotePDFLongNote(t *testing.T) {
	requireFont(t)

	// A note long enough to force wrapping and a page break.
	appt := models.Appointment{
		PatientName: "Buddy",
		Date:        "2025-03-14 09:30",
		SOAPNote:    strings.Repeat("The patient was examined and findings were recorded in detail. ", 200),
	}

	pdfBytes, err := SOAPNotePDF(appt)
	if err != nil {
		t.Fatalf("SOAPNotePDF: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("empty PDF output")
	}
}
