package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"motorlog/internal/auth"
	"motorlog/internal/errors"
	"motorlog/internal/model"
	"motorlog/internal/service"
)

// VehicleHandler handles vehicle endpoints.
type VehicleHandler struct {
	vehicleService service.VehicleService
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicleService service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// CreateVehicleRequest represents a vehicle creation request. The odometer
// reading travels as a string, like money amounts.
type CreateVehicleRequest struct {
	Name               string `json:"name" validate:"required"`
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	VehicleType        string `json:"vehicleType" validate:"required"`
	InitialOdometer    string `json:"initialOdometer" validate:"required"`
}

// UpdateVehicleRequest represents a vehicle update request. The registration
// number is immutable and addressed through the path.
type UpdateVehicleRequest struct {
	Name            string `json:"name" validate:"required"`
	VehicleType     string `json:"vehicleType" validate:"required"`
	InitialOdometer string `json:"initialOdometer" validate:"required"`
}

// VehicleResponse wraps a vehicle with a human-readable message.
type VehicleResponse struct {
	Message string         `json:"message"`
	Vehicle *model.Vehicle `json:"vehicle"`
}

// Create godoc
// @Summary Add a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateVehicleRequest true "Vehicle data"
// @Success 201 {object} VehicleResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /vehicles [post]
func (h *VehicleHandler) Create(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var req CreateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "all fields are required",
			Code:  "VALIDATION_ERROR",
		})
	}

	odometer, err := decimal.NewFromString(req.InitialOdometer)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid initial odometer reading",
			Code:  "INVALID_ODOMETER",
		})
	}

	vehicle, err := h.vehicleService.Create(
		c.Request().Context(),
		identity,
		req.Name,
		req.RegistrationNumber,
		model.VehicleType(req.VehicleType),
		odometer,
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, VehicleResponse{
		Message: "vehicle added successfully",
		Vehicle: vehicle,
	})
}

// List godoc
// @Summary List the user's vehicles
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Vehicle
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /vehicles [get]
func (h *VehicleHandler) List(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return err
	}

	vehicles, err := h.vehicleService.List(c.Request().Context(), identity)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, vehicles)
}

// Get godoc
// @Summary Get a vehicle by registration number
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param registrationNumber path string true "Registration number"
// @Success 200 {object} model.Vehicle
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /vehicles/{registrationNumber} [get]
func (h *VehicleHandler) Get(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return err
	}

	vehicle, err := h.vehicleService.Get(c.Request().Context(), identity, c.Param("registrationNumber"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, vehicle)
}

// Update godoc
// @Summary Update a vehicle's mutable fields
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationNumber path string true "Registration number"
// @Param request body UpdateVehicleRequest true "Mutable fields"
// @Success 200 {object} VehicleResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /vehicles/{registrationNumber} [put]
func (h *VehicleHandler) Update(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var req UpdateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "missing required fields",
			Code:  "VALIDATION_ERROR",
		})
	}

	odometer, err := decimal.NewFromString(req.InitialOdometer)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid initial odometer reading",
			Code:  "INVALID_ODOMETER",
		})
	}

	vehicle, err := h.vehicleService.Update(
		c.Request().Context(),
		identity,
		c.Param("registrationNumber"),
		req.Name,
		model.VehicleType(req.VehicleType),
		odometer,
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, VehicleResponse{
		Message: "vehicle updated successfully",
		Vehicle: vehicle,
	})
}

// Delete godoc
// @Summary Delete a vehicle
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param registrationNumber path string true "Registration number"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /vehicles/{registrationNumber} [delete]
func (h *VehicleHandler) Delete(c echo.Context) error {
	identity, err := auth.CurrentIdentity(c)
	if err != nil {
		return err
	}

	if err := h.vehicleService.Delete(c.Request().Context(), identity, c.Param("registrationNumber")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "vehicle deleted successfully",
	})
}
