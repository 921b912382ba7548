package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/educonnect-backend/internal/response"
	"github.com/stemsi/educonnect-backend/internal/service"
)

// DatasetHandler serves the read-only school dataset.
type DatasetHandler struct {
	datasetService *service.DatasetService
}

func NewDatasetHandler(datasetService *service.DatasetService) *DatasetHandler {
	return &DatasetHandler{datasetService: datasetService}
}

// ListStudents godoc
// GET /api/v1/students
func (h *DatasetHandler) ListStudents(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"students": h.datasetService.Students()})
}

// ListTemplates godoc
// GET /api/v1/templates
func (h *DatasetHandler) ListTemplates(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"templates": h.datasetService.Templates()})
}
