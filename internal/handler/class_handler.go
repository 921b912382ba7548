package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/educonnect-backend/internal/model"
	"github.com/stemsi/educonnect-backend/internal/response"
	"github.com/stemsi/educonnect-backend/internal/service"
	"github.com/stemsi/educonnect-backend/internal/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ClassHandler handles the class list, class detail and roster export.
type ClassHandler struct {
	classService *service.ClassService
	log          zerolog.Logger
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService, log zerolog.Logger) *ClassHandler {
	return &ClassHandler{
		classService: classService,
		log:          log.With().Str("component", "class_handler").Logger(),
	}
}

// ListClasses godoc
// GET /api/v1/classes
// Lists every class with its student count.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"classes": h.classService.List()})
}

// AddClass godoc
// POST /api/v1/classes
// Adds an empty class. Duplicate labels are rejected with 409.
func (h *ClassHandler) AddClass(c *gin.Context) {
	var req model.AddClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Add(req.Serie)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClassExists):
			response.Fail(c, http.StatusConflict, response.ErrClassExists)
		case errors.Is(err, service.ErrClassLabelRequired):
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"serie": err.Error()})
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// ListStudents godoc
// GET /api/v1/classes/:serie/students
// Lists the students of a class. Unknown classes yield an empty list.
func (h *ClassHandler) ListStudents(c *gin.Context) {
	serie := c.Param("serie")
	response.Success(c, http.StatusOK, gin.H{
		"serie":    serie,
		"students": h.classService.Students(serie),
	})
}

// ExportRoster godoc
// GET /api/v1/classes/:serie/export
// Downloads the class roster as an XLSX workbook.
func (h *ClassHandler) ExportRoster(c *gin.Context) {
	serie := c.Param("serie")
	data, err := h.classService.Export(serie)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Str("serie", serie).Msg("failed to export roster")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	filename := service.RosterFileName(serie)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(http.StatusOK, xlsxContentType, data)
}
