package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/recycling-finder/internal/batch"
	"github.com/octobees/recycling-finder/internal/dto"
	"github.com/octobees/recycling-finder/internal/places"
	"github.com/octobees/recycling-finder/internal/service"
)

// SearchRunner is the pipeline entry point the handler invokes.
type SearchRunner interface {
	Run(ctx context.Context, location string) (service.Report, error)
}

// SearchHandler triggers discovery runs over the places API.
type SearchHandler struct {
	search SearchRunner
}

// NewSearchHandler constructs a search handler.
func NewSearchHandler(search SearchRunner) *SearchHandler {
	return &SearchHandler{search: search}
}

// Run handles POST /search requests. The run is synchronous: the response
// carries the full report including the per-record failure ledger.
func (h *SearchHandler) Run(c echo.Context) error {
	var req dto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Location = strings.TrimSpace(req.Location)
	if req.Location == "" {
		return Error(c, http.StatusBadRequest, "location is required")
	}

	report, err := h.search.Run(c.Request().Context(), req.Location)
	if err != nil {
		if errors.Is(err, places.ErrNotFound) {
			return Error(c, http.StatusNotFound, "location could not be resolved")
		}
		var fatal *batch.TransactionFatalError
		if errors.As(err, &fatal) {
			return Error(c, http.StatusBadGateway, "batch execution aborted")
		}
		return Error(c, http.StatusInternalServerError, "search run failed")
	}

	return Success(c, http.StatusOK, "search completed", report)
}
