package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slotbook/models"
	"slotbook/services/schedule"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScheduleService returns canned results so handler tests exercise only
// the HTTP mapping.
type stubScheduleService struct {
	createErr error
	created   *models.Reservation
	deleteErr error
}

func (s *stubScheduleService) WeekSchedule(ctx context.Context, refDate time.Time, trackID string) (models.WeekSchedule, error) {
	return models.WeekSchedule{}, nil
}

func (s *stubScheduleService) CreateReservation(ctx context.Context, input models.ReservationInput) (*models.Reservation, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func (s *stubScheduleService) UpdateReservation(ctx context.Context, id, requestingUserID string, upd models.ReservationUpdate) (*models.Reservation, error) {
	return nil, nil
}

func (s *stubScheduleService) DeleteReservation(ctx context.Context, id, requestingUserID string) error {
	return s.deleteErr
}

func (s *stubScheduleService) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	return nil, nil
}

func (s *stubScheduleService) UserReservations(ctx context.Context, userID string) ([]models.Reservation, []models.Reservation, error) {
	return nil, nil, nil
}

func newReservationRouter(svc schedule.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewReservationHandler(svc)

	auth := func(c *gin.Context) { c.Set("userID", "u1") }
	r.POST("/api/reservations", auth, h.CreateReservationHandler)
	r.DELETE("/api/reservations/:id", auth, h.DeleteReservationHandler)
	return r
}

func postReservation(t *testing.T, r *gin.Engine, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validPayload() map[string]any {
	return map[string]any{
		"filiere_id":   "t1",
		"creneau_id":   "s1",
		"date":         "2025-03-03",
		"titre_module": "Algorithmique",
		"description":  "Structures de données persistantes.",
	}
}

func TestCreateReservationHandlerCreated(t *testing.T) {
	svc := &stubScheduleService{created: &models.Reservation{ID: "r1", UserID: "u1"}}
	w := postReservation(t, newReservationRouter(svc), validPayload())

	assert.Equal(t, http.StatusCreated, w.Code)

	var res models.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "r1", res.ID)
}

func TestCreateReservationHandlerRejectsShortDescription(t *testing.T) {
	payload := validPayload()
	payload["description"] = "court"
	w := postReservation(t, newReservationRouter(&stubScheduleService{}), payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReservationHandlerRejectsBadDate(t *testing.T) {
	payload := validPayload()
	payload["date"] = "03/03/2025"
	w := postReservation(t, newReservationRouter(&stubScheduleService{}), payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReservationHandlerErrorStatuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{schedule.NewMissingFieldError("titre_module"), http.StatusBadRequest},
		{schedule.NewNotFoundError("slot", "s9"), http.StatusNotFound},
		{schedule.NewSlotTakenError(nil), http.StatusConflict},
		{schedule.NewForbiddenError("not yours"), http.StatusForbidden},
		{schedule.NewConnectionError(context.DeadlineExceeded), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		svc := &stubScheduleService{createErr: tc.err}
		w := postReservation(t, newReservationRouter(svc), validPayload())
		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}

func TestCreateReservationHandlerConflictBody(t *testing.T) {
	conflict := &models.Reservation{ID: "r-winner", UserID: "u2"}
	svc := &stubScheduleService{createErr: schedule.NewSlotTakenError(conflict)}

	w := postReservation(t, newReservationRouter(svc), validPayload())
	assert.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Error    string             `json:"error"`
		Conflict models.Reservation `json:"conflict"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "r-winner", body.Conflict.ID)
	assert.NotEmpty(t, body.Error)
}

func TestDeleteReservationHandlerForbidden(t *testing.T) {
	svc := &stubScheduleService{deleteErr: schedule.NewForbiddenError("only the reservation owner may delete it")}
	r := newReservationRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/reservations/r1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
