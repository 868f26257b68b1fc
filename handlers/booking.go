package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hively/models"
	"hively/services/booking"
	"hively/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the reservation engine over HTTP.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

// NewBookingHandler builds a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// actorFrom pulls the authenticated identity set by the auth middleware.
func actorFrom(c *gin.Context) booking.Actor {
	userID, _ := c.Get("userID")
	role, _ := c.Get("role")
	id, _ := userID.(string)
	return booking.Actor{UserID: id, Admin: role == models.RoleAdmin}
}

// statusFor maps the engine's error kinds onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, booking.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrWorkspaceNotFound), errors.Is(err, booking.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, booking.ErrBookingConflict),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, booking.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// bookingError writes the engine error as a structured response. Conflicts
// carry the blocking reservation IDs and a retryable hint so clients can back
// off on version races.
func bookingError(c *gin.Context, err error) {
	body := gin.H{
		"error":     err.Error(),
		"retryable": booking.Retryable(err),
	}
	var conflict *booking.ConflictError
	if errors.As(err, &conflict) {
		body["blockingIds"] = conflict.BlockingIDs
	}
	c.JSON(statusFor(err), body)
}

// CheckAvailability probes a range without creating anything.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var input models.ReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Svc.CheckAvailability(c.Request.Context(), input)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateReservation books a workspace for the authenticated caller.
func (h *BookingHandler) CreateReservation(c *gin.Context) {
	var input models.ReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	res, err := h.Svc.Create(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// CancelReservation cancels a reservation with a reason.
func (h *BookingHandler) CancelReservation(c *gin.Context) {
	var input models.CancelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	res, err := h.Svc.Cancel(c.Request.Context(), actorFrom(c), c.Param("id"), input)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RescheduleReservation moves a reservation to a new range.
func (h *BookingHandler) RescheduleReservation(c *gin.Context) {
	var input models.RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	res, err := h.Svc.Reschedule(c.Request.Context(), actorFrom(c), c.Param("id"), input)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ConfirmReservation transitions pending to confirmed. Admin only.
func (h *BookingHandler) ConfirmReservation(c *gin.Context) {
	var input struct {
		Version int64 `json:"version"`
	}
	// An empty body means "confirm whatever version is current".
	_ = c.ShouldBindJSON(&input)

	res, err := h.Svc.Confirm(c.Request.Context(), actorFrom(c), c.Param("id"), input.Version)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListReservations returns reservations visible to the caller.
func (h *BookingHandler) ListReservations(c *gin.Context) {
	var filter models.ReservationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	out, err := h.Svc.List(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": out})
}

// Recommendations suggests workspaces from the caller's booking history.
func (h *BookingHandler) Recommendations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	out, err := h.Svc.Recommend(c.Request.Context(), actorFrom(c), limit)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workspaces": out})
}
