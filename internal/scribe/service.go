// Package scribe owns the appointment lifecycle: record creation, id
// assignment, patient de-duplication, and the follow-up mutations that attach
// generated emails and dental charts. Every mutation triggers persistence.
package scribe

import (
	"context"
	"errors"
	"time"

	"vetscribe-server/internal/dental"
	"vetscribe-server/internal/models"
	"vetscribe-server/internal/store"
)

// Generator is the set of generation calls the lifecycle needs; satisfied by
// ai.Client and faked in tests.
type Generator interface {
	GenerateSOAP(ctx context.Context, caseText string) (string, error)
	GenerateClientSummary(ctx context.Context, caseText string) (string, error)
	GenerateClientEmail(ctx context.Context, appt models.Appointment) (string, error)
	ExtractDentalFindings(ctx context.Context, notes string) (string, error)
}

// CaseTextBuilder composes the generation input from signalment + notes.
// Injected so the service does not depend on the ai package's templates.
type CaseTextBuilder func(appt models.Appointment, notes string) string

type Service struct {
	store     *store.Store
	gen       Generator
	buildCase CaseTextBuilder
	now       func() time.Time
}

func NewService(st *store.Store, gen Generator, buildCase CaseTextBuilder) *Service {
	return &Service{
		store:     st,
		gen:       gen,
		buildCase: buildCase,
		now:       time.Now,
	}
}

// CreateInput carries the form fields for a new appointment.
type CreateInput struct {
	PatientName      string
	ClientName       string
	Species          string
	Breed            string
	Age              string
	Sex              string
	Weight           string
	AppointmentType  string
	TemplateType     string
	Consent          string
	Notes            string
	TranscribedAudio string
}

// CreateResult is a successfully created appointment plus an optional
// persistence warning: when saving failed the record still exists in session
// memory, it just is not durable.
type CreateResult struct {
	Appointment models.Appointment
	Warning     string
}

// CreateAppointment runs the full creation workflow. Both generations must
// succeed before anything is recorded; a failure of either call aborts with
// the collections unchanged. On success the store assigns the next integer id
// (1 + current collection length) and registers the patient when the name has
// not been seen before, both inside one critical section so overlapping
// requests cannot collide.
func (s *Service) CreateAppointment(ctx context.Context, in CreateInput) (*CreateResult, error) {
	var missing []string
	if in.PatientName == "" {
		missing = append(missing, "patient_name")
	}
	if in.ClientName == "" {
		missing = append(missing, "client_name")
	}
	if in.Notes == "" {
		missing = append(missing, "notes")
	}
	if len(missing) > 0 {
		return nil, &models.ValidationError{Fields: missing}
	}

	appt := models.Appointment{
		PatientName:     in.PatientName,
		ClientName:      in.ClientName,
		Species:         in.Species,
		Breed:           in.Breed,
		Age:             in.Age,
		Sex:             in.Sex,
		Weight:          in.Weight,
		AppointmentType: in.AppointmentType,
		TemplateType:    in.TemplateType,
		Consent:         in.Consent,
		OriginalNotes:   in.Notes,
	}
	if in.TranscribedAudio != "" {
		audio := in.TranscribedAudio
		appt.TranscribedAudio = &audio
	}

	caseText := s.buildCase(appt, in.Notes)

	soapNote, err := s.gen.GenerateSOAP(ctx, caseText)
	if err != nil {
		return nil, err
	}
	clientSummary, err := s.gen.GenerateClientSummary(ctx, caseText)
	if err != nil {
		return nil, err
	}

	now := s.now()
	appt.Date = now.Format(models.DateTimeLayout)
	appt.SOAPNote = soapNote
	appt.ClientSummary = clientSummary

	patient := models.Patient{
		Name:      in.PatientName,
		Client:    in.ClientName,
		Species:   in.Species,
		Breed:     in.Breed,
		Age:       in.Age,
		Sex:       in.Sex,
		Weight:    in.Weight,
		AddedDate: now.Format(models.DateLayout),
	}

	recorded, err := s.store.RecordAppointment(appt, patient)
	result := &CreateResult{Appointment: recorded}
	if err != nil {
		result.Warning = err.Error()
	}

	return result, nil
}

// GenerateClientEmail produces a fresh follow-up email for the appointment
// and stores it on the record, replacing any earlier one. Each call is a new
// generation; the latest result wins.
func (s *Service) GenerateClientEmail(ctx context.Context, id int) (*CreateResult, error) {
	appt, err := s.store.AppointmentByID(id)
	if err != nil {
		return nil, err
	}

	email, err := s.gen.GenerateClientEmail(ctx, appt)
	if err != nil {
		return nil, err
	}

	appt.ClientEmail = &email
	result := &CreateResult{Appointment: appt}
	if err := s.store.ReplaceAppointment(appt); err != nil {
		if errors.Is(err, models.ErrAppointmentNotFound) {
			return nil, err
		}
		result.Warning = err.Error()
	}
	return result, nil
}

// AttachDentalChart runs the experimental findings extraction over the
// appointment's original notes and stores the resulting chart. Extraction is
// best-effort: unparseable model output produces a chart with no findings.
func (s *Service) AttachDentalChart(ctx context.Context, id int) (*CreateResult, error) {
	appt, err := s.store.AppointmentByID(id)
	if err != nil {
		return nil, err
	}

	findings := dental.Extract(ctx, s.gen, appt.OriginalNotes, appt.Species)
	chart := models.DentalChart{
		Species:     appt.Species,
		Findings:    findings,
		GeneratedAt: s.now().Format(models.DateTimeLayout),
	}

	appt.DentalChart = &chart
	result := &CreateResult{Appointment: appt}
	if err := s.store.ReplaceAppointment(appt); err != nil {
		if errors.Is(err, models.ErrAppointmentNotFound) {
			return nil, err
		}
		result.Warning = err.Error()
	}
	return result, nil
}

// Appointment looks a single record up by id.
func (s *Service) Appointment(id int) (models.Appointment, error) {
	return s.store.AppointmentByID(id)
}

// Appointments returns the collection in creation order.
func (s *Service) Appointments() []models.Appointment {
	return s.store.Appointments()
}

// Patients returns the registered patients.
func (s *Service) Patients() []models.Patient {
	return s.store.Patients()
}

// Stats are the dashboard counters.
type Stats struct {
	TotalAppointments int `json:"total_appointments"`
	TotalPatients     int `json:"total_patients"`
	EmailsGenerated   int `json:"emails_generated"`
	DentalCharts      int `json:"dental_charts"`
	MinutesSaved      int `json:"minutes_saved"`
}

const minutesSavedPerAppointment = 15

func (s *Service) Stats() Stats {
	appts := s.store.Appointments()
	st := Stats{
		TotalAppointments: len(appts),
		TotalPatients:     len(s.store.Patients()),
		MinutesSaved:      len(appts) * minutesSavedPerAppointment,
	}
	for _, appt := range appts {
		if appt.ClientEmail != nil {
			st.EmailsGenerated++
		}
		if appt.DentalChart != nil {
			st.DentalCharts++
		}
	}
	return st
}

// Export snapshots both collections in the on-disk shape.
func (s *Service) Export() store.Document {
	return s.store.Export()
}

// Import replaces both collections with the supplied document.
func (s *Service) Import(doc store.Document) error {
	return s.store.ReplaceAll(doc)
}

// Clear wipes all data and persists the empty state.
func (s *Service) Clear() error {
	return s.store.Reset()
}
