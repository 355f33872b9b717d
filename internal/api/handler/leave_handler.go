package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/employee-system/internal/api/metrics"
	"github.com/staffhub/employee-system/internal/core/domain"
	"github.com/staffhub/employee-system/internal/core/ports"
)

// LeaveHandler handles HTTP requests for leave requests. Filing and listing
// one's own requests need only authentication; review routes are admin-gated
// at the router.
type LeaveHandler struct {
	service ports.LeaveService
}

func NewLeaveHandler(service ports.LeaveService) *LeaveHandler {
	return &LeaveHandler{service: service}
}

type requestLeaveRequest struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date"   validate:"required"`
	Reason    string    `json:"reason"     validate:"required"`
}

type decideLeaveRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// Request handles POST /api/leave/request for the authenticated caller.
//
// @Summary      File a leave request
// @Tags         leave
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      requestLeaveRequest  true  "Leave details"
// @Success      201   {object}  domain.LeaveRequest
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /leave/request [post]
func (h *LeaveHandler) Request(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req requestLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.service.Request(c.Request().Context(), ports.RequestLeaveInput{
		EmployeeID: userID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, request)
}

// ListMine handles GET /api/leave/my-requests.
//
// @Summary      List the caller's leave requests
// @Tags         leave
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.LeaveRequest
// @Failure      401  {object}  map[string]string
// @Router       /leave/my-requests [get]
func (h *LeaveHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	requests, err := h.service.ListMine(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// ListAll handles GET /api/leave/all-requests.
//
// @Summary      List all leave requests
// @Tags         leave
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.LeaveRequest
// @Failure      403  {object}  map[string]string
// @Router       /leave/all-requests [get]
func (h *LeaveHandler) ListAll(c echo.Context) error {
	requests, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// Decide handles PUT /api/leave/requests/:id.
//
// @Summary      Approve or reject a leave request
// @Tags         leave
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Leave request id"
// @Param        body  body      decideLeaveRequest  true  "New status"
// @Success      200   {object}  domain.LeaveRequest
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /leave/requests/{id} [put]
func (h *LeaveHandler) Decide(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req decideLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.service.Decide(c.Request().Context(), userID, c.Param("id"), domain.LeaveStatus(req.Status))
	if err != nil {
		return err
	}
	metrics.LeaveDecisionsTotal.WithLabelValues(req.Status).Inc()

	return c.JSON(http.StatusOK, request)
}
