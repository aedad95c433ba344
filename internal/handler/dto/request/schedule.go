package request

import (
	"time"

	"courtbook/internal/pkg/dateutil"
)

type ScheduleRangeRequest struct {
	From string `form:"from" binding:"required"` // "2006-01-02"
	To   string `form:"to" binding:"required"`   // "2006-01-02"
}

func (r ScheduleRangeRequest) ParseRange() (time.Time, time.Time, error) {
	from, err := time.ParseInLocation(dateutil.DateLayout, r.From, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.ParseInLocation(dateutil.DateLayout, r.To, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

type ExportScheduleRequest struct {
	ScheduleRangeRequest
	Format string `form:"format" binding:"required"` // "csv" or "json"
}
