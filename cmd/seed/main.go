// Seed fills the data file with demo appointments and patients so the UI has
// something to show without burning API credits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"

	"vetscribe-server/internal/models"
	"vetscribe-server/internal/store"
)

var appointmentTypes = []string{
	"Wellness Exam",
	"Sick Visit",
	"Surgery Consultation",
	"Follow-up",
	"Emergency",
	"Dental",
	"Vaccination",
	"Geriatric Check",
}

var species = []string{"Dog", "Cat", "Bird", "Rabbit", "Ferret", "Guinea Pig"}

var sexes = []string{"Male Neutered", "Male Intact", "Female Spayed", "Female Intact"}

const demoConsent = "I confirm that the client has been informed and has consented to this " +
	"appointment being recorded for medical documentation purposes, including transcription by AI services."

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	count := flag.Int("n", 10, "number of appointments to seed")
	flag.Parse()

	_ = godotenv.Load()
	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "vetscribe_data.json"
	}

	log.Printf("seeding %d appointments into %s", *count, dataFile)

	st := store.New(dataFile)
	st.Load()

	gofakeit.Seed(time.Now().UnixNano())

	for i := 0; i < *count; i++ {
		patientName := gofakeit.PetName()
		clientName := gofakeit.Name()
		sp := species[gofakeit.Number(0, len(species)-1)]
		breed := gofakeit.Animal()
		age := fmt.Sprintf("%d years", gofakeit.Number(1, 14))
		weight := fmt.Sprintf("%.1f kg", gofakeit.Float64Range(1.5, 45))
		when := time.Now().AddDate(0, 0, -gofakeit.Number(0, 120))

		notes := fmt.Sprintf(
			"Chief Complaint: %s has been %s for %d days. T %.1fF, HR %d bpm. "+
				"Physical exam otherwise unremarkable. Plan: supportive care and recheck.",
			patientName,
			gofakeit.RandomString([]string{"lethargic", "coughing", "limping", "scratching", "vomiting intermittently"}),
			gofakeit.Number(1, 7),
			gofakeit.Float64Range(100.5, 103.5),
			gofakeit.Number(70, 140),
		)

		appt := models.Appointment{
			Date:            when.Format(models.DateTimeLayout),
			PatientName:     patientName,
			ClientName:      clientName,
			Species:         sp,
			Breed:           breed,
			Age:             age,
			Sex:             sexes[gofakeit.Number(0, len(sexes)-1)],
			Weight:          weight,
			AppointmentType: appointmentTypes[gofakeit.Number(0, len(appointmentTypes)-1)],
			TemplateType:    "SOAP Note",
			OriginalNotes:   notes,
			SOAPNote: fmt.Sprintf(
				"SUBJECTIVE: %s\n\nOBJECTIVE: Not documented\n\nASSESSMENT: Not documented\n\nPLAN: Supportive care and recheck.",
				notes),
			ClientSummary: fmt.Sprintf(
				"%s was seen today. We discussed the findings and a care plan; please monitor at home and call with any concerns.",
				patientName),
			Consent: demoConsent,
		}

		patient := models.Patient{
			Name:      patientName,
			Client:    clientName,
			Species:   sp,
			Breed:     breed,
			Age:       age,
			Sex:       appt.Sex,
			Weight:    weight,
			AddedDate: when.Format(models.DateLayout),
		}

		if _, err := st.RecordAppointment(appt, patient); err != nil {
			log.Fatalf("seed appointment: %v", err)
		}
	}

	log.Printf("seed complete: %d appointments, %d patients", st.AppointmentCount(), len(st.Patients()))
}
