package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/recycling-finder/internal/service"
)

// AdminUploadHandler handles vocabulary CSV ingestion for administrators.
type AdminUploadHandler struct {
	materialsService *service.MaterialsService
}

// NewAdminUploadHandler wires a handler backed by the materials service.
func NewAdminUploadHandler(materialsService *service.MaterialsService) *AdminUploadHandler {
	return &AdminUploadHandler{materialsService: materialsService}
}

// UploadCSV handles POST /admin/materials/upload-csv requests.
func (h *AdminUploadHandler) UploadCSV(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing csv file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	summary, err := h.materialsService.ImportMaterialsCSV(c.Request().Context(), file)
	if err != nil {
		var validationErr service.CSVValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to process csv")
	}

	return Success(c, http.StatusOK, "materials CSV processed", summary)
}
