package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/http/response"
	"github.com/salonledger/salonledger-backend/internal/services"
)

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload accepts multipart form data: "file" plus a "type" field and an
// optional "appointmentId" for receipts.
func (uh *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer file.Close()

	input := services.UploadInput{
		Type:     domain.MediaType(c.PostForm("type")),
		Filename: fileHeader.Filename,
		File:     file,
	}
	if raw := c.PostForm("appointmentId"); raw != "" {
		id, pErr := uuid.Parse(raw)
		if pErr != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", pErr)
			return
		}
		input.AppointmentID = &id
	}

	stored, upErr := uh.uploadService.Upload(c.Request.Context(), input)
	if upErr != nil {
		response.RespondFromError(c, upErr)
		return
	}
	response.RespondCreated(c, stored)
}

func (uh *UploadHandler) List(c *gin.Context) {
	uploads, err := uh.uploadService.List(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, uploads)
}
