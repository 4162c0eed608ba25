package models

// Timestamp layouts used across the persisted records. The appointment date
// keeps the minute-resolution layout of the existing data files.
const (
	DateTimeLayout = "2006-01-02 15:04"
	DateLayout     = "2006-01-02"
)

// Appointment represents one completed clinical encounter. Field names in the
// JSON document are fixed; the on-disk shape is part of the external interface
// and older files may omit the optional fields.
type Appointment struct {
	ID               int          `json:"id"`
	Date             string       `json:"date"`
	PatientName      string       `json:"patient_name"`
	ClientName       string       `json:"client_name"`
	Species          string       `json:"species"`
	Breed            string       `json:"breed"`
	Age              string       `json:"age"`
	Sex              string       `json:"sex"`
	Weight           string       `json:"weight"`
	AppointmentType  string       `json:"appointment_type"`
	TemplateType     string       `json:"template_type"`
	OriginalNotes    string       `json:"original_notes"`
	SOAPNote         string       `json:"soap_note"`
	ClientSummary    string       `json:"client_summary"`
	Consent          string       `json:"consent"`
	TranscribedAudio *string      `json:"transcribed_audio"`
	ClientEmail      *string      `json:"client_email,omitempty"`
	DentalChart      *DentalChart `json:"dental_chart_data,omitempty"`
}

// Patient is a denormalized, append-only summary of an animal. Uniqueness is
// enforced on Name alone; a repeat visit never creates a second entry even
// when the signalment differs.
type Patient struct {
	Name      string `json:"name"`
	Client    string `json:"client"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	Age       string `json:"age"`
	Sex       string `json:"sex"`
	Weight    string `json:"weight"`
	AddedDate string `json:"added_date"`
}

// DentalChart is the experimental chart attached to COHAT appointments.
// Findings map tooth numbers (modified Triadan) to a condition code.
type DentalChart struct {
	Species     string            `json:"species"`
	Findings    map[string]string `json:"findings"`
	GeneratedAt string            `json:"generated_at"`
}
