package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoemant/strata-web/internal/api/middleware"
	bookSlot "github.com/shoemant/strata-web/internal/usecase/book_slot"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	resp *bookSlot.Response
	err  error

	gotReq *bookSlot.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *bookSlot.Request) (*bookSlot.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type recordingMetrics struct {
	mode    string
	outcome string
}

func (r *recordingMetrics) ObserveAdmission(mode, outcome string) {
	r.mode = mode
	r.outcome = outcome
}

// newRequest собирает запрос, прошедший Auth middleware
func newRequest(t *testing.T, body string, userID int64) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))

	var authed *http.Request
	middleware.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authed = r
	})).ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, authed)
	return authed
}

func sampleResponse() *bookSlot.Response {
	return &bookSlot.Response{
		ID:              1,
		UserID:          100,
		ResourceID:      10,
		BookingDate:     time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		EndTime:         "09:30",
		DurationMinutes: 30,
		Status:          "confirmed",
		ResourceName:    "Gym",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func TestHandle_CreatesBooking(t *testing.T) {
	uc := &fakeUseCase{resp: sampleResponse()}
	metrics := &recordingMetrics{}
	h := NewHandler(uc, metrics, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(t, `{"resourceId":10,"bookingDate":"2026-09-07","startTime":"09:00"}`, 100))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "slot", metrics.mode)
	assert.Equal(t, "accepted", metrics.outcome)

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(100), uc.gotReq.UserID)
	assert.Equal(t, int64(10), uc.gotReq.ResourceID)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-07", resp.BookingDate)
	assert.Equal(t, "09:30", resp.EndTime)
}

func TestHandle_RepeatBookingReturnsOK(t *testing.T) {
	resp := sampleResponse()
	resp.AlreadyExisted = true
	h := NewHandler(&fakeUseCase{resp: resp}, nil, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(t, `{"resourceId":10,"bookingDate":"2026-09-07","startTime":"09:00"}`, 100))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantOutcome string
	}{
		{name: "slot full", err: bookSlot.ErrSlotFull, wantStatus: http.StatusConflict, wantOutcome: "slot_full"},
		{name: "resource not found", err: bookSlot.ErrResourceNotFound, wantStatus: http.StatusNotFound, wantOutcome: "not_found"},
		{name: "slot not found", err: bookSlot.ErrSlotNotFound, wantStatus: http.StatusNotFound, wantOutcome: "not_found"},
		{name: "resource inactive", err: bookSlot.ErrResourceInactive, wantStatus: http.StatusConflict, wantOutcome: "rejected"},
		{name: "wrong mode", err: bookSlot.ErrWrongMode, wantStatus: http.StatusBadRequest, wantOutcome: "rejected"},
		{name: "past date", err: bookSlot.ErrInvalidDate, wantStatus: http.StatusBadRequest, wantOutcome: "rejected"},
		{name: "storage unavailable", err: bookSlot.ErrStorageUnavailable, wantStatus: http.StatusServiceUnavailable, wantOutcome: "unavailable"},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantOutcome: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := &recordingMetrics{}
			h := NewHandler(&fakeUseCase{err: tt.err}, metrics, nopLogger{})

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(t, `{"resourceId":10,"bookingDate":"2026-09-07","startTime":"09:00"}`, 100))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOutcome, metrics.outcome)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	h := NewHandler(&fakeUseCase{resp: sampleResponse()}, nil, nopLogger{})

	t.Run("missing user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings",
			bytes.NewBufferString(`{"resourceId":10,"bookingDate":"2026-09-07","startTime":"09:00"}`))
		rec := httptest.NewRecorder()
		h.Handle(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest(t, `{not json`, 100))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad date format", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest(t, `{"resourceId":10,"bookingDate":"07.09.2026","startTime":"09:00"}`, 100))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetUserID(r.Context())
		require.True(t, ok)
		assert.Equal(t, int64(42), id)
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("valid header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-ID", "42")
		rec := httptest.NewRecorder()
		middleware.Auth(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		middleware.Auth(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-numeric header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-ID", "abc")
		rec := httptest.NewRecorder()
		middleware.Auth(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
