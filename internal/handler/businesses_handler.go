package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/recycling-finder/internal/dto"
	"github.com/octobees/recycling-finder/internal/service"
)

// BusinessesHandler exposes the stored business catalogue.
type BusinessesHandler struct {
	service *service.BusinessesService
}

// NewBusinessesHandler creates a new handler instance.
func NewBusinessesHandler(service *service.BusinessesService) *BusinessesHandler {
	return &BusinessesHandler{service: service}
}

// List handles GET /businesses requests.
func (h *BusinessesHandler) List(c echo.Context) error {
	filter := dto.BusinessFilter{
		Q:        strings.TrimSpace(c.QueryParam("q")),
		City:     strings.TrimSpace(c.QueryParam("city")),
		Material: strings.TrimSpace(c.QueryParam("material")),
		Page:     parseIntDefault(c.QueryParam("page"), 1),
		PerPage:  parseIntDefault(c.QueryParam("per_page"), 20),
	}

	if minRatingStr := strings.TrimSpace(c.QueryParam("min_rating")); minRatingStr != "" {
		minRating, err := strconv.ParseFloat(minRatingStr, 64)
		if err != nil {
			return Error(c, http.StatusBadRequest, "invalid min_rating")
		}
		filter.MinRating = &minRating
	}

	businesses, err := h.service.ListBusinesses(c.Request().Context(), filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list businesses")
	}

	return Success(c, http.StatusOK, "businesses retrieved", businesses)
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
