package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slotwise/config"
	"slotwise/handlers"
	"slotwise/models"
	"slotwise/routes"
	"slotwise/services/booking"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// stubBookings records what the handlers pass through. Methods a test does
// not exercise panic through the nil embedded interface.
type stubBookings struct {
	booking.BookingService

	created  models.CreateReservationInput
	status   models.StatusUpdateInput
	patch    models.ProgressPatch
	deleteBy utils.Caller
	err      error
}

func (s *stubBookings) Create(_ context.Context, in models.CreateReservationInput) (*models.Reservation, error) {
	s.created = in
	if s.err != nil {
		return nil, s.err
	}
	return &models.Reservation{ID: "res-1", Status: models.StatusPending}, nil
}

func (s *stubBookings) UpdateStatus(_ context.Context, _, id string, in models.StatusUpdateInput) (*models.Reservation, error) {
	s.status = in
	if s.err != nil {
		return nil, s.err
	}
	return &models.Reservation{ID: id, Status: models.StatusConfirmed}, nil
}

func (s *stubBookings) UpdateProgress(_ context.Context, _, id string, patch models.ProgressPatch) (*models.Reservation, error) {
	s.patch = patch
	return &models.Reservation{ID: id}, s.err
}

func (s *stubBookings) Delete(_ context.Context, caller utils.Caller, _ string) error {
	s.deleteBy = caller
	return s.err
}

func newServer(t *testing.T, svc booking.BookingService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "handler-secret"

	r := gin.New()
	routes.RegisterRoutes(r, &handlers.HandlerBundle{
		Reservations: handlers.NewReservationHandler(svc, zap.NewNop()),
		Availability: handlers.NewAvailabilityHandler(nil, zap.NewNop()),
		Tiers:        handlers.NewTierHandler(nil),
	})
	return r
}

func token(t *testing.T, id, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(id, role, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return "Bearer " + tok
}

func send(r http.Handler, method, path, auth, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Authorization", auth)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReservationJSON(t *testing.T) {
	svc := &stubBookings{}
	r := newServer(t, svc)

	body := []byte(`{"serviceId":"svc-1","date":"2025-06-02","startTime":"10:00","latitude":-1.29,"longitude":36.82}`)
	w := send(r, http.MethodPost, "/api/reservations", token(t, "user-1", utils.RoleUser), "application/json", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.created.RequesterID != "user-1" || svc.created.ServiceID != "svc-1" || svc.created.Latitude == nil || *svc.created.Latitude != -1.29 {
		t.Fatalf("unexpected input %+v", svc.created)
	}
	if svc.created.Image != nil {
		t.Fatal("JSON request must not carry an image")
	}

	w = send(r, http.MethodPost, "/api/reservations", token(t, "prov-1", utils.RoleProvider), "application/json", body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("providers cannot book, got %d", w.Code)
	}

	w = send(r, http.MethodPost, "/api/reservations", token(t, "user-1", utils.RoleUser), "application/json", []byte(`{"serviceId":"svc-1"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields should be a 400, got %d", w.Code)
	}
}

func TestCreateReservationMultipart(t *testing.T) {
	svc := &stubBookings{}
	r := newServer(t, svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("serviceId", "svc-1")
	_ = mw.WriteField("date", "2025-06-02")
	_ = mw.WriteField("startTime", "10:00")
	part, _ := mw.CreateFormFile("image", "lawn.jpg")
	_, _ = part.Write([]byte("jpeg bytes"))
	_ = mw.Close()

	w := send(r, http.MethodPost, "/api/reservations", token(t, "user-1", utils.RoleUser), mw.FormDataContentType(), buf.Bytes())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.created.Image == nil || svc.created.Image.Filename != "lawn.jpg" || string(svc.created.Image.Data) != "jpeg bytes" {
		t.Fatalf("image not passed through: %+v", svc.created.Image)
	}
}

func TestErrorKindsMapToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{utils.ValidationError("endTime is required"), http.StatusBadRequest},
		{utils.ConflictError("cannot move reservation from REJECTED to CONFIRMED"), http.StatusConflict},
		{utils.AuthorizationError("not your service"), http.StatusForbidden},
		{utils.NotFoundError("reservation not found"), http.StatusNotFound},
	}
	for _, tt := range tests {
		svc := &stubBookings{err: tt.err}
		r := newServer(t, svc)
		w := send(r, http.MethodPatch, "/api/reservations/res-1/status", token(t, "prov-1", utils.RoleProvider),
			"application/json", []byte(`{"status":"CONFIRMED","endTime":"11:00","workNote":"ladder"}`))
		if w.Code != tt.want {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.want, w.Code)
		}
		var body utils.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Message != tt.err.(*utils.AppError).Message {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
		if svc.status.WorkNote != "ladder" || svc.status.EndTime != "11:00" {
			t.Fatalf("status input not bound: %+v", svc.status)
		}
	}
}

func TestUpdateProgressKeepsAbsentFields(t *testing.T) {
	svc := &stubBookings{}
	r := newServer(t, svc)

	w := send(r, http.MethodPatch, "/api/reservations/res-1/progress", token(t, "prov-1", utils.RoleProvider),
		"application/json", []byte(`{"paymentConfirmed":true}`))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.patch.PaymentConfirmed == nil || !*svc.patch.PaymentConfirmed {
		t.Fatal("paymentConfirmed not bound")
	}
	if svc.patch.JobInProgress != nil || svc.patch.OTPCode != nil || svc.patch.Notes != nil || svc.patch.PickupImage != nil {
		t.Fatalf("absent fields must stay nil: %+v", svc.patch)
	}
}

func TestDeleteReservationRoles(t *testing.T) {
	svc := &stubBookings{}
	r := newServer(t, svc)

	w := send(r, http.MethodDelete, "/api/reservations/res-1", token(t, "admin-1", utils.RoleAdmin), "", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if svc.deleteBy.ID != "admin-1" || svc.deleteBy.Role != utils.RoleAdmin {
		t.Fatalf("caller not passed through: %+v", svc.deleteBy)
	}

	w = send(r, http.MethodDelete, "/api/reservations/res-1", token(t, "prov-1", utils.RoleProvider), "", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("providers cannot delete, got %d", w.Code)
	}
}
