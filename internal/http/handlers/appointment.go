package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/http/response"
	"github.com/salonledger/salonledger-backend/internal/services"
)

type AppointmentHandler struct {
	appointmentService services.AppointmentService
}

func NewAppointmentHandler(appointmentService services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func (ah *AppointmentHandler) Create(c *gin.Context) {
	var req services.CreateAppointmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	appointment, err := ah.appointmentService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, appointment)
}

func (ah *AppointmentHandler) List(c *gin.Context) {
	query := services.AppointmentListQuery{}
	if raw := c.Query("professionalId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		query.ProfessionalID = id
	}
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		query.Start = t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		query.End = t
	}

	appointments, err := ah.appointmentService.List(c.Request.Context(), query)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, appointments)
}

func (ah *AppointmentHandler) UpdateStatus(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var req struct {
		Status domain.AppointmentStatus `json:"status"`
		Reason string                   `json:"reason"`
	}
	if bErr := c.ShouldBindJSON(&req); bErr != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", bErr)
		return
	}
	appointment, sErr := ah.appointmentService.UpdateStatus(c.Request.Context(), appointmentID, req.Status, req.Reason)
	if sErr != nil {
		response.RespondFromError(c, sErr)
		return
	}
	response.RespondOK(c, appointment)
}
