package api

import (
	"errors"
	"net/http"

	reqdto "courtbook/internal/handler/dto/request"
	resdto "courtbook/internal/handler/dto/response"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
}

func NewReservationHandler(reservationCommands commands.ReservationCommands) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
	}
}

// @Summary Submit reservation
// @Description Book a slot on the court for a customer
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.SubmitReservationRequest true "Reservation request"
// @Success 201 {object} resdto.SubmitReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} resdto.ConflictResponse
// @Failure 422 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) SubmitReservation(c *gin.Context) {
	var req reqdto.SubmitReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date, time or duration",
		})
		return
	}

	result, err := h.reservationCommands.SubmitReservation(c.Request.Context(), cmd)
	if err != nil {
		h.respondSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSubmitResult(result))
}

func (h *ReservationHandler) respondSubmitError(c *gin.Context, err error) {
	var conflictErr *commands.SlotConflictError

	switch {
	case errors.Is(err, errs.ErrEmptyCustomerName):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "First and last name are required",
		})
	case errors.Is(err, errs.ErrInvalidDuration), errors.Is(err, errs.ErrInvalidTimeSlot):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date, time or duration",
		})
	case errors.Is(err, errs.ErrInsufficientLeadTime):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Reservation must start more than an hour from now",
			"code":  "lead_time",
		})
	case errors.Is(err, errs.ErrWeeklyQuotaExceeded):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Weekly reservation limit reached",
			"code":  "weekly_quota",
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, resdto.NewConflictResponse(conflictErr.SuggestedStart))
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// @Summary Cancel reservation
// @Description Cancel a reservation by id; cancelling twice is a no-op
// @Tags reservations
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	if err := h.reservationCommands.CancelReservation(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}
