package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/http/response"
	"github.com/salonledger/salonledger-backend/internal/services"
)

type ServiceHandler struct {
	catalogService services.CatalogService
}

func NewServiceHandler(catalogService services.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService}
}

func (sh *ServiceHandler) Create(c *gin.Context) {
	var req services.CreateServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	svc, err := sh.catalogService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, svc)
}

func (sh *ServiceHandler) List(c *gin.Context) {
	svcs, err := sh.catalogService.List(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, svcs)
}

func (sh *ServiceHandler) Update(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var req services.UpdateServiceInput
	if bErr := c.ShouldBindJSON(&req); bErr != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", bErr)
		return
	}
	svc, uErr := sh.catalogService.Update(c.Request.Context(), serviceID, req)
	if uErr != nil {
		response.RespondFromError(c, uErr)
		return
	}
	response.RespondOK(c, svc)
}

func (sh *ServiceHandler) Delete(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if dErr := sh.catalogService.Delete(c.Request.Context(), serviceID); dErr != nil {
		response.RespondFromError(c, dErr)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
