package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chakai-booking/internal/dto/request"
	"chakai-booking/internal/dto/response"
	"chakai-booking/internal/usecase"
	"chakai-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockReservationService struct {
	mock.Mock
}

func (m *mockReservationService) Create(ctx context.Context, eventID string, req *request.CreateReservationRequest) (*response.ReservationCreatedResponse, error) {
	args := m.Called(ctx, eventID, req)
	created, _ := args.Get(0).(*response.ReservationCreatedResponse)
	return created, args.Error(1)
}

func (m *mockReservationService) Update(ctx context.Context, reservationID string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error) {
	args := m.Called(ctx, reservationID, req)
	updated, _ := args.Get(0).(*response.ReservationResponse)
	return updated, args.Error(1)
}

func (m *mockReservationService) Delete(ctx context.Context, reservationID string) error {
	return m.Called(ctx, reservationID).Error(0)
}

func (m *mockReservationService) GetByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	args := m.Called(ctx, reservationID)
	found, _ := args.Get(0).(*response.ReservationResponse)
	return found, args.Error(1)
}

func (m *mockReservationService) ListByEvent(ctx context.Context, eventID string) ([]response.ReservationResponse, error) {
	args := m.Called(ctx, eventID)
	list, _ := args.Get(0).([]response.ReservationResponse)
	return list, args.Error(1)
}

func (m *mockReservationService) Lookup(ctx context.Context, req *request.LookupReservationRequest) (*response.LookupResponse, error) {
	args := m.Called(ctx, req)
	found, _ := args.Get(0).(*response.LookupResponse)
	return found, args.Error(1)
}

func (m *mockReservationService) DeleteEventCascade(ctx context.Context, eventID uuid.UUID) error {
	return m.Called(ctx, eventID).Error(0)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", usecase.NewValidationError(map[string]string{"Guests": "Minimum value is 1"}), http.StatusBadRequest},
		{"capacity", &usecase.CapacityExceededError{SeatTime: "09:00", Capacity: 2, Reserved: 2, Requested: 1}, http.StatusConflict},
		{"duplicate", usecase.ErrDuplicateBooking, http.StatusConflict},
		{"seat in use", fmt.Errorf("%w: 11:00 holds 2 guests", usecase.ErrSeatInUse), http.StatusConflict},
		{"event missing", usecase.ErrEventNotFound, http.StatusNotFound},
		{"seat missing", usecase.ErrSeatNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get post: %w", usecase.ErrPostNotFound), http.StatusNotFound},
		{"credentials", usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{"media", fmt.Errorf("%w: text/plain", usecase.ErrUnsupportedMedia), http.StatusUnsupportedMediaType},
		{"store down", errors.New("dial tcp: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")
			assert.Equal(t, tt.status, rec.Code)

			body := decodeEnvelope(t, rec)
			assert.Equal(t, false, body["status"])
		})
	}
}

func TestHandleServiceError_CapacityDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), &usecase.CapacityExceededError{
		SeatTime: "09:00", Capacity: 5, Reserved: 4, Requested: 3,
	}, "create reservation")

	details, ok := decodeEnvelope(t, rec)["errors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "09:00", details["seat_time"])
	assert.Equal(t, float64(1), details["available"])
	assert.Equal(t, float64(3), details["requested"])
}

func newReservationRouter(svc usecase.ReservationService, reservationID string) http.Handler {
	h := NewReservationHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/events/{id}/reservations", h.CreateReservation)
	r.Post("/api/admin/reservations", h.AdminCreateReservation)
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if reservationID != "" {
					r = r.WithContext(utils.WithReservation(r.Context(), reservationID))
				}
				next.ServeHTTP(w, r)
			})
		})
		r.Put("/api/reservations/{id}", h.UpdateOwnReservation)
		r.Delete("/api/reservations/{id}", h.DeleteOwnReservation)
	})
	return r
}

func TestReservationHandler_Create(t *testing.T) {
	svc := new(mockReservationService)
	svc.On("Create", mock.Anything, "evt-1", mock.MatchedBy(func(req *request.CreateReservationRequest) bool {
		return req.Email == "guest@example.com" && req.Guests == 2 && req.SeatTime == "09:00"
	})).Return(&response.ReservationCreatedResponse{ReservationID: "res-1", Password: "pw123456"}, nil)

	body := `{"name":"山田","email":"guest@example.com","guests":2,"seat_time":"09:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/events/evt-1/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newReservationRouter(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	data, ok := decodeEnvelope(t, rec)["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "res-1", data["reservation_id"])
	assert.Equal(t, "pw123456", data["password"])
	svc.AssertExpectations(t)
}

func TestReservationHandler_CreateRejectsBadJSON(t *testing.T) {
	svc := new(mockReservationService)

	req := httptest.NewRequest(http.MethodPost, "/api/events/evt-1/reservations", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	newReservationRouter(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestReservationHandler_AdminCreateValidatesEventID(t *testing.T) {
	svc := new(mockReservationService)

	body := `{"event_id":"nope","name":"山田","email":"guest@example.com","guests":1,"seat_time":"09:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newReservationRouter(svc, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs, ok := decodeEnvelope(t, rec)["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "EventID")
}

func TestReservationHandler_OwnerOnly(t *testing.T) {
	svc := new(mockReservationService)
	svc.On("Delete", mock.Anything, "res-1").Return(nil)
	svc.On("Update", mock.Anything, "res-1", mock.Anything).Return(&response.ReservationResponse{ID: "res-1", Guests: 3}, nil)

	rec := httptest.NewRecorder()
	newReservationRouter(svc, "res-1").ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/reservations/res-2", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	newReservationRouter(svc, "").ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/reservations/res-1", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	newReservationRouter(svc, "res-1").ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/reservations/res-1", strings.NewReader(`{"guests":3}`)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	newReservationRouter(svc, "res-1").ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/reservations/res-1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.AssertNumberOfCalls(t, "Delete", 1)
	svc.AssertNumberOfCalls(t, "Update", 1)
}

func TestReservationHandler_CapacityConflict(t *testing.T) {
	svc := new(mockReservationService)
	svc.On("Create", mock.Anything, "evt-1", mock.Anything).
		Return(nil, &usecase.CapacityExceededError{SeatTime: "09:00", Capacity: 2, Reserved: 2, Requested: 1})

	body := `{"name":"山田","email":"guest@example.com","guests":1,"seat_time":"09:00"}`
	rec := httptest.NewRecorder()
	newReservationRouter(svc, "").ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/events/evt-1/reservations", strings.NewReader(body)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}
