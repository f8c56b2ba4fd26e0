package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tripweaver/layover-engine/internal/engine"
	"github.com/tripweaver/layover-engine/internal/models"
)

type LayoverHandler struct {
	engine *engine.Engine
}

func NewLayoverHandler(eng *engine.Engine) *LayoverHandler {
	return &LayoverHandler{engine: eng}
}

func (h *LayoverHandler) Discover(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.DiscoveryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	resp, err := h.engine.Discover(ctx, req)
	if err != nil {
		return writeEngineError(c, err, "discovery_error")
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *LayoverHandler) Book(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	resp, err := h.engine.Book(ctx, req)
	if err != nil {
		return writeEngineError(c, err, "booking_error")
	}

	return c.JSON(http.StatusCreated, resp)
}

// writeEngineError maps the engine's typed failures onto transport
// codes: validation 400, no-longer-available 409, everything else 500.
func writeEngineError(c echo.Context, err error, fallback string) error {
	var validation models.ValidationError
	if errors.As(err, &validation) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: validation.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if errors.Is(err, models.ErrLayoverInfeasible) {
		return c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "layover_unavailable",
			Message: err.Error(),
			Code:    http.StatusConflict,
		})
	}

	var unavailable *models.UnavailableSelectionError
	if errors.As(err, &unavailable) {
		name := "experiences_unavailable"
		if unavailable.AllFailed() {
			name = "nothing_bookable"
		}
		return c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   name,
			Message: unavailable.Error(),
			Code:    http.StatusConflict,
		})
	}

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   fallback,
		Message: err.Error(),
		Code:    http.StatusInternalServerError,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
