package api

import (
	"errors"
	"fmt"
	"net/http"

	"courtbook/internal/export"
	reqdto "courtbook/internal/handler/dto/request"
	resdto "courtbook/internal/handler/dto/response"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleQueries queries.ScheduleQueries
}

func NewScheduleHandler(scheduleQueries queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleQueries: scheduleQueries,
	}
}

// @Summary List schedule
// @Description List reservations grouped by date for an inclusive date range
// @Tags schedule
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} resdto.DayScheduleResponse
// @Failure 400 {object} map[string]string
// @Router /schedule [get]
func (h *ScheduleHandler) ListSchedule(c *gin.Context) {
	var req reqdto.ScheduleRangeRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameters from and to are required",
		})
		return
	}

	from, to, err := req.ParseRange()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format",
		})
		return
	}

	days, err := h.scheduleQueries.List(c.Request.Context(), from, to)
	if err != nil {
		h.respondRangeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromDaySchedules(days))
}

// @Summary Export schedule
// @Description Export the schedule for a date range as CSV or JSON attachment
// @Tags schedule
// @Produce text/csv,application/json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param format query string true "Export format (csv or json)"
// @Success 200
// @Failure 400 {object} map[string]string
// @Router /schedule/export [get]
func (h *ScheduleHandler) ExportSchedule(c *gin.Context) {
	var req reqdto.ExportScheduleRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameters from, to and format are required",
		})
		return
	}

	format := export.Format(req.Format)
	if !format.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown export format",
		})
		return
	}

	from, to, err := req.ParseRange()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format",
		})
		return
	}

	days, err := h.scheduleQueries.List(c.Request.Context(), from, to)
	if err != nil {
		h.respondRangeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName()))
	c.Header("Content-Type", format.ContentType())
	c.Status(http.StatusOK)

	if format == export.FormatJSON {
		err = export.WriteJSON(c.Writer, days)
	} else {
		err = export.WriteCSV(c.Writer, days)
	}
	if err != nil {
		// Headers are already on the wire; all we can do is record it.
		_ = c.Error(err)
	}
}

func (h *ScheduleHandler) respondRangeError(c *gin.Context, err error) {
	if errors.Is(err, errs.ErrInvalidDateRange) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Range start must not be after range end",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
