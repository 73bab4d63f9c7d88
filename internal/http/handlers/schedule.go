package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/http/response"
	"github.com/salonledger/salonledger-backend/internal/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(scheduleService services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

func (sh *ScheduleHandler) SetAvailability(c *gin.Context) {
	var req []services.AvailabilityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rows, err := sh.scheduleService.SetAvailability(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, rows)
}

func (sh *ScheduleHandler) ListAvailability(c *gin.Context) {
	professionalID, err := optionalUUIDQuery(c, "professionalId")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rows, lErr := sh.scheduleService.ListAvailability(c.Request.Context(), professionalID)
	if lErr != nil {
		response.RespondFromError(c, lErr)
		return
	}
	response.RespondOK(c, rows)
}

func (sh *ScheduleHandler) AddBlock(c *gin.Context) {
	var req services.BlockInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	block, err := sh.scheduleService.AddBlock(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, block)
}

func (sh *ScheduleHandler) ListBlocks(c *gin.Context) {
	professionalID, err := optionalUUIDQuery(c, "professionalId")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rows, lErr := sh.scheduleService.ListBlocks(c.Request.Context(), professionalID)
	if lErr != nil {
		response.RespondFromError(c, lErr)
		return
	}
	response.RespondOK(c, rows)
}

func (sh *ScheduleHandler) CreateRequest(c *gin.Context) {
	var req services.BookingRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	request, err := sh.scheduleService.CreateRequest(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, request)
}

func (sh *ScheduleHandler) ListRequests(c *gin.Context) {
	requests, err := sh.scheduleService.ListRequests(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, requests)
}

func (sh *ScheduleHandler) DecideRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var req struct {
		Status domain.RequestStatus `json:"status"`
	}
	if bErr := c.ShouldBindJSON(&req); bErr != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", bErr)
		return
	}
	request, dErr := sh.scheduleService.DecideRequest(c.Request.Context(), requestID, req.Status)
	if dErr != nil {
		response.RespondFromError(c, dErr)
		return
	}
	response.RespondOK(c, request)
}

func optionalUUIDQuery(c *gin.Context, name string) (uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}
