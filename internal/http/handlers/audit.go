package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/salonledger/salonledger-backend/internal/http/response"
	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
	"github.com/salonledger/salonledger-backend/internal/requestdata"
	"github.com/salonledger/salonledger-backend/internal/services"
)

type AuditHandler struct {
	auditService services.AuditService
}

func NewAuditHandler(auditService services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (ah *AuditHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondFromError(c, apierr.Unauthenticated("no request data in context"))
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	entries, err := ah.auditService.List(c.Request.Context(), rd.TenantID, limit)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, entries)
}
