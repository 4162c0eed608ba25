package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"vetscribe-server/internal/models"
	"vetscribe-server/internal/report"
	"vetscribe-server/internal/scribe"
	"vetscribe-server/internal/store"
	"vetscribe-server/internal/utils"
)

// ExportHandler serves the download artifacts: per-appointment notes as text
// or PDF, and the full data set as JSON.
type ExportHandler struct {
	Svc *scribe.Service
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(svc *scribe.Service) *ExportHandler {
	return &ExportHandler{Svc: svc}
}

// DownloadSOAP offers the SOAP note as a UTF-8 text attachment.
func (h *ExportHandler) DownloadSOAP(c *gin.Context) {
	h.downloadText(c, "SOAP", func(appt models.Appointment) (string, bool) {
		return appt.SOAPNote, appt.SOAPNote != ""
	})
}

// DownloadSummary offers the client summary as a text attachment.
func (h *ExportHandler) DownloadSummary(c *gin.Context) {
	h.downloadText(c, "Summary", func(appt models.Appointment) (string, bool) {
		return appt.ClientSummary, appt.ClientSummary != ""
	})
}

// DownloadEmail offers the generated client email as a text attachment.
// 404 when no email has been generated for the appointment yet.
func (h *ExportHandler) DownloadEmail(c *gin.Context) {
	h.downloadText(c, "Email", func(appt models.Appointment) (string, bool) {
		if appt.ClientEmail == nil {
			return "", false
		}
		return *appt.ClientEmail, true
	})
}

func (h *ExportHandler) downloadText(c *gin.Context, kind string, pick func(models.Appointment) (string, bool)) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}
	appt, err := h.Svc.Appointment(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	content, ok := pick(appt)
	if !ok {
		utils.NotFound(c, fmt.Sprintf("No %s content exists for this appointment", strings.ToLower(kind)))
		return
	}

	filename := fmt.Sprintf("%s_%s_%s.txt", kind, appt.PatientName, sanitizeDate(appt.Date))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

// DownloadPDF renders the SOAP note as a PDF attachment.
func (h *ExportHandler) DownloadPDF(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}
	appt, err := h.Svc.Appointment(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pdfBytes, err := report.SOAPNotePDF(appt)
	if err != nil {
		utils.InternalServerError(c, "Failed to render PDF: "+err.Error())
		return
	}

	filename := fmt.Sprintf("SOAP_%s_%s.pdf", appt.PatientName, sanitizeDate(appt.Date))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// ExportDocument mirrors the on-disk shape plus an export timestamp.
type ExportDocument struct {
	Appointments []models.Appointment `json:"appointments"`
	Patients     []models.Patient     `json:"patients"`
	ExportDate   string               `json:"export_date"`
}

// ExportData offers the full collections as a JSON attachment.
func (h *ExportHandler) ExportData(c *gin.Context) {
	doc := h.Svc.Export()
	now := time.Now()
	out := ExportDocument{
		Appointments: doc.Appointments,
		Patients:     doc.Patients,
		ExportDate:   now.Format(time.RFC3339),
	}

	filename := fmt.Sprintf("vetscribe_export_%s.json", now.Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.IndentedJSON(http.StatusOK, out)
}

// ImportData replaces both collections with a previously exported document.
func (h *ExportHandler) ImportData(c *gin.Context) {
	var doc ExportDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		utils.BadRequest(c, "Invalid import payload: "+err.Error())
		return
	}

	err := h.Svc.Import(store.Document{
		Appointments: doc.Appointments,
		Patients:     doc.Patients,
	})
	if err != nil {
		utils.SuccessWithWarning(c, "Data imported into session memory", h.Svc.Stats(), err.Error())
		return
	}
	utils.Success(c, "Data imported successfully", h.Svc.Stats())
}

// ClearData wipes all appointments and patients. Requires confirm=true.
func (h *ExportHandler) ClearData(c *gin.Context) {
	if c.Query("confirm") != "true" {
		utils.BadRequest(c, "Clearing all data requires confirm=true")
		return
	}

	if err := h.Svc.Clear(); err != nil {
		utils.SuccessWithWarning(c, "Data cleared from session memory", nil, err.Error())
		return
	}
	utils.Success(c, "All data cleared successfully", nil)
}

// sanitizeDate makes an appointment timestamp filename-safe, matching the
// naming of previously exported files.
func sanitizeDate(date string) string {
	return strings.ReplaceAll(strings.ReplaceAll(date, " ", "_"), ":", "")
}
