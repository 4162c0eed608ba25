package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"vetscribe-server/internal/config"
	"vetscribe-server/internal/dental"
	"vetscribe-server/internal/models"
	"vetscribe-server/internal/scribe"
	"vetscribe-server/internal/utils"
)

// AppointmentHandler handles the appointment lifecycle requests.
type AppointmentHandler struct {
	Svc *scribe.Service
	Cfg *config.Config
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc *scribe.Service, cfg *config.Config) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Cfg: cfg}
}

// CreateAppointmentRequest represents the request body for creating an
// appointment. Breed, age, sex and weight default to empty.
type CreateAppointmentRequest struct {
	PatientName      string `json:"patient_name" binding:"required"`
	ClientName       string `json:"client_name" binding:"required"`
	Species          string `json:"species" binding:"required"`
	Breed            string `json:"breed"`
	Age              string `json:"age"`
	Sex              string `json:"sex"`
	Weight           string `json:"weight"`
	AppointmentType  string `json:"appointment_type" binding:"required"`
	TemplateType     string `json:"template_type"`
	Consent          string `json:"consent" binding:"required"`
	Notes            string `json:"notes" binding:"required"`
	TranscribedAudio string `json:"transcribed_audio"`
}

// CreateAppointment runs the generation workflow and records the appointment.
// The record is created only when both the SOAP note and the client summary
// generate without error.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := h.Svc.CreateAppointment(c.Request.Context(), scribe.CreateInput{
		PatientName:      req.PatientName,
		ClientName:       req.ClientName,
		Species:          req.Species,
		Breed:            req.Breed,
		Age:              req.Age,
		Sex:              req.Sex,
		Weight:           req.Weight,
		AppointmentType:  req.AppointmentType,
		TemplateType:     req.TemplateType,
		Consent:          req.Consent,
		Notes:            req.Notes,
		TranscribedAudio: req.TranscribedAudio,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Appointment created successfully", result.Appointment, result.Warning)
}

// GetAppointments returns the full appointment history in creation order.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	utils.Success(c, "Appointments fetched successfully", h.Svc.Appointments())
}

// GetAppointmentByID fetches a single appointment.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	appt, err := h.Svc.Appointment(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Appointment fetched successfully", appt)
}

// GenerateClientEmail generates (or regenerates) the follow-up email for an
// appointment. The latest result overwrites any earlier one.
func (h *AppointmentHandler) GenerateClientEmail(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	result, err := h.Svc.GenerateClientEmail(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessWithWarning(c, "Client email generated successfully", result.Appointment, result.Warning)
}

// GenerateDentalChart attaches an AI-extracted dental chart to a COHAT
// appointment. Experimental; gated behind a config flag.
func (h *AppointmentHandler) GenerateDentalChart(c *gin.Context) {
	if !h.Cfg.EnableDentalCharts {
		utils.Forbidden(c, "Dental chart generation is an experimental feature. Set ENABLE_DENTAL_CHARTS=true to enable it.")
		return
	}

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	result, err := h.Svc.AttachDentalChart(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	chart := result.Appointment.DentalChart
	utils.SuccessWithWarning(c, "Dental chart generated successfully", gin.H{
		"appointment": result.Appointment,
		"summary":     dental.Summarize(chart.Findings),
		"layout":      dental.Layout(chart.Species),
		"legend":      dental.Conditions,
	}, result.Warning)
}

// GetDashboard returns the home screen counters.
func (h *AppointmentHandler) GetDashboard(c *gin.Context) {
	utils.Success(c, "Dashboard fetched successfully", h.Svc.Stats())
}

func appointmentID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid appointment ID: must be an integer")
		return 0, false
	}
	return id, true
}

// respondServiceError maps the scribe error kinds onto HTTP statuses.
// Generation failures carry the adapter's error text verbatim so the operator
// sees exactly what the upstream service said.
func respondServiceError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		utils.BadRequest(c, verr.Error())
		return
	}
	var gerr *models.GenerationError
	if errors.As(err, &gerr) {
		utils.BadGateway(c, gerr.Error())
		return
	}
	if errors.Is(err, models.ErrAppointmentNotFound) {
		utils.NotFound(c, "Appointment not found")
		return
	}
	utils.InternalServerError(c, err.Error())
}
