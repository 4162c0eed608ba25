// Package store owns the session copy of the appointment and patient
// collections and their single-file JSON persistence. The file is rewritten
// whole on every save; there is no locking across processes, which is
// acceptable only under the single-operator deployment this app assumes.
package store

import (
	"encoding/json"
	"os"
	"sync"

	"vetscribe-server/internal/models"
)

// Document is the on-disk shape of the data file. Readers must tolerate
// missing optional fields; there is no schema version.
type Document struct {
	Appointments []models.Appointment `json:"appointments"`
	Patients     []models.Patient     `json:"patients"`
}

// Store hydrates the two collections from the data file once per session and
// keeps them in memory. Every mutation goes through it.
type Store struct {
	path string

	mu           sync.Mutex
	appointments []models.Appointment
	patients     []models.Patient
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the data file into the session state. A missing or malformed
// file yields two empty collections and no error: a corrupt file must never
// keep the app from starting.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appointments = []models.Appointment{}
	s.patients = []models.Patient{}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return
	}
	if doc.Appointments != nil {
		s.appointments = doc.Appointments
	}
	if doc.Patients != nil {
		s.patients = doc.Patients
	}
}

// Save overwrites the data file with the full collections. A failure leaves
// the session state untouched and is reported to the caller; it is never
// fatal to the running session.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	doc := Document{Appointments: s.appointments, Patients: s.patients}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &models.PersistenceError{Err: err}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return &models.PersistenceError{Err: err}
	}
	return nil
}

// Appointments returns a copy of the appointment collection in creation order.
func (s *Store) Appointments() []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

// Patients returns a copy of the patient collection.
func (s *Store) Patients() []models.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Patient, len(s.patients))
	copy(out, s.patients)
	return out
}

// AppointmentCount reports the current collection length. Id assignment does
// not go through this; RecordAppointment assigns under its own lock.
func (s *Store) AppointmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

// AppointmentByID looks an appointment up by linear scan on id.
func (s *Store) AppointmentByID(id int) (models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, appt := range s.appointments {
		if appt.ID == id {
			return appt, nil
		}
	}
	return models.Appointment{}, models.ErrAppointmentNotFound
}

// RecordAppointment assigns the next id (1 + current collection length),
// appends the record, registers the patient when the name has not been seen
// before, and persists. All of it happens under one critical section so
// overlapping creations can neither mint the same id nor register a patient
// twice. The records stay in the session collections even when the save
// fails; the returned appointment carries the assigned id.
func (s *Store) RecordAppointment(appt models.Appointment, patient models.Patient) (models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt.ID = len(s.appointments) + 1
	s.appointments = append(s.appointments, appt)

	known := false
	for _, p := range s.patients {
		if p.Name == patient.Name {
			known = true
			break
		}
	}
	if !known {
		s.patients = append(s.patients, patient)
	}

	return appt, s.saveLocked()
}

// ReplaceAppointment swaps the record with the matching id in place and
// persists. Last writer wins; there is no concurrency check.
func (s *Store) ReplaceAppointment(appt models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == appt.ID {
			s.appointments[i] = appt
			return s.saveLocked()
		}
	}
	return models.ErrAppointmentNotFound
}

// Export returns a snapshot of both collections in the on-disk shape. Both
// are copied under one lock so the document is internally consistent even
// against a concurrent import or clear.
func (s *Store) Export() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	appts := make([]models.Appointment, len(s.appointments))
	copy(appts, s.appointments)
	patients := make([]models.Patient, len(s.patients))
	copy(patients, s.patients)
	return Document{Appointments: appts, Patients: patients}
}

// ReplaceAll swaps both collections for the imported ones and persists.
func (s *Store) ReplaceAll(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments = doc.Appointments
	s.patients = doc.Patients
	if s.appointments == nil {
		s.appointments = []models.Appointment{}
	}
	if s.patients == nil {
		s.patients = []models.Patient{}
	}
	return s.saveLocked()
}

// Reset clears both collections and persists the empty state.
func (s *Store) Reset() error {
	return s.ReplaceAll(Document{})
}
