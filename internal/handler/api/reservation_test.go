//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"courtbook/internal/handler/api"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/commands"
	commandsmock "courtbook/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands)

	s.router.POST("/reservations", s.handler.SubmitReservation)
	s.router.DELETE("/reservations/:id", s.handler.CancelReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func validBody() map[string]any {
	return map[string]any{
		"first_name":       "Anna",
		"last_name":        "Nowak",
		"date":             "2025-06-02",
		"time":             "10:00",
		"duration_minutes": 60,
	}
}

func (s *ReservationHandlerTestSuite) postReservation(body map[string]any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/reservations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ReservationHandlerTestSuite) TestSubmitReservation() {
	s.Run("returns 201 with the reservation id", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			SubmitReservation(gomock.Any(), gomock.Any()).
			Return(&commands.SubmitReservationResult{ReservationID: id}, nil)

		rec := s.postReservation(validBody())

		s.Equal(http.StatusCreated, rec.Code)
		var resp struct {
			ReservationID uuid.UUID `json:"reservation_id"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal(id, resp.ReservationID)
	})

	s.Run("returns 400 on missing fields", func() {
		body := validBody()
		delete(body, "first_name")
		rec := s.postReservation(body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("returns 400 on malformed date", func() {
		body := validBody()
		body["date"] = "02.06.2025"
		rec := s.postReservation(body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("returns 400 on unsupported duration", func() {
		body := validBody()
		body["duration_minutes"] = 45
		rec := s.postReservation(body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("returns 422 on insufficient lead time", func() {
		s.mockCommands.EXPECT().
			SubmitReservation(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInsufficientLeadTime)

		rec := s.postReservation(validBody())

		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		s.Contains(rec.Body.String(), "lead_time")
	})

	s.Run("returns 422 on exhausted weekly quota", func() {
		s.mockCommands.EXPECT().
			SubmitReservation(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrWeeklyQuotaExceeded)

		rec := s.postReservation(validBody())

		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		s.Contains(rec.Body.String(), "weekly_quota")
	})

	s.Run("returns 409 with a suggested start on conflict", func() {
		suggested := time.Date(2025, 6, 2, 11, 0, 0, 0, time.Local)
		s.mockCommands.EXPECT().
			SubmitReservation(gomock.Any(), gomock.Any()).
			Return(nil, &commands.SlotConflictError{SuggestedStart: &suggested})

		rec := s.postReservation(validBody())

		s.Equal(http.StatusConflict, rec.Code)
		var resp struct {
			Error          string  `json:"error"`
			SuggestedStart *string `json:"suggested_start"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Require().NotNil(resp.SuggestedStart)
		s.Equal("2025-06-02 11:00", *resp.SuggestedStart)
	})

	s.Run("returns 409 without a suggestion when the day is full", func() {
		s.mockCommands.EXPECT().
			SubmitReservation(gomock.Any(), gomock.Any()).
			Return(nil, &commands.SlotConflictError{})

		rec := s.postReservation(validBody())

		s.Equal(http.StatusConflict, rec.Code)
		s.NotContains(rec.Body.String(), "suggested_start")
	})

	s.Run("returns 500 on unexpected errors", func() {
		s.mockCommands.EXPECT().
			SubmitReservation(gomock.Any(), gomock.Any()).
			Return(nil, errs.New("boom"))

		rec := s.postReservation(validBody())
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	s.Run("returns 204 on success", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			CancelReservation(gomock.Any(), id).
			Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/reservations/"+id.String(), nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("returns 400 on malformed id", func() {
		req := httptest.NewRequest(http.MethodDelete, "/reservations/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("returns 500 when the cancel fails", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			CancelReservation(gomock.Any(), id).
			Return(errs.New("boom"))

		req := httptest.NewRequest(http.MethodDelete, "/reservations/"+id.String(), nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}
