package handlers

import (
	"github.com/gin-gonic/gin"

	"vetscribe-server/internal/scribe"
	"vetscribe-server/internal/utils"
)

// PatientHandler serves the registered patient list. Patients are added
// automatically when appointments are created; there is no direct creation.
type PatientHandler struct {
	Svc *scribe.Service
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(svc *scribe.Service) *PatientHandler {
	return &PatientHandler{Svc: svc}
}

// GetPatients returns all registered patients.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	utils.Success(c, "Patients fetched successfully", h.Svc.Patients())
}
