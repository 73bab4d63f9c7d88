package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/http/response"
	"github.com/salonledger/salonledger-backend/internal/services"
)

type ApprovalHandler struct {
	approvalService services.ApprovalService
}

func NewApprovalHandler(approvalService services.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

func (ah *ApprovalHandler) ListPending(c *gin.Context) {
	pending, err := ah.approvalService.ListPending(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, pending)
}

func (ah *ApprovalHandler) Decide(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var req struct {
		Action domain.ApprovalAction `json:"action"`
	}
	if bErr := c.ShouldBindJSON(&req); bErr != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", bErr)
		return
	}
	profile, dErr := ah.approvalService.Decide(c.Request.Context(), professionalID, req.Action)
	if dErr != nil {
		response.RespondFromError(c, dErr)
		return
	}
	response.RespondOK(c, profile)
}
