package booking_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/mock/gomock"
)

func TestCreateValidation(t *testing.T) {
	f := newFixture(t).quiet()

	tests := []struct {
		name   string
		mutate func(in *models.CreateReservationInput)
		kind   utils.ErrorKind
	}{
		{name: "missing requester", mutate: func(in *models.CreateReservationInput) { in.RequesterID = "" }, kind: utils.KindValidation},
		{name: "missing service", mutate: func(in *models.CreateReservationInput) { in.ServiceID = "" }, kind: utils.KindValidation},
		{name: "bad date", mutate: func(in *models.CreateReservationInput) { in.Date = "2/6/2025" }, kind: utils.KindValidation},
		{name: "bad time", mutate: func(in *models.CreateReservationInput) { in.StartTime = "25:00" }, kind: utils.KindValidation},
		{name: "latitude alone", mutate: func(in *models.CreateReservationInput) { in.Longitude = nil }, kind: utils.KindValidation},
		{name: "latitude out of range", mutate: func(in *models.CreateReservationInput) { in.Latitude = models.Float(91) }, kind: utils.KindValidation},
		{name: "unknown service", mutate: func(in *models.CreateReservationInput) { in.ServiceID = "nope" }, kind: utils.KindNotFound},
		{name: "unknown requester", mutate: func(in *models.CreateReservationInput) { in.RequesterID = "ghost" }, kind: utils.KindNotFound},
		{name: "suspended requester", mutate: func(in *models.CreateReservationInput) { in.RequesterID = "user-suspended" }, kind: utils.KindValidation},
		{name: "past date", mutate: func(in *models.CreateReservationInput) { in.Date = "2025-05-26" }, kind: utils.KindValidation},
		{name: "closed weekday", mutate: func(in *models.CreateReservationInput) { in.Date = "2025-06-03" }, kind: utils.KindValidation},
		{name: "before opening", mutate: func(in *models.CreateReservationInput) { in.StartTime = "08:59" }, kind: utils.KindValidation},
		{name: "at closing", mutate: func(in *models.CreateReservationInput) { in.StartTime = "17:00" }, kind: utils.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input(userID, "10:00")
			tt.mutate(&in)
			_, err := f.svc.Create(f.ctx, in)
			expectKind(t, err, tt.kind)
		})
	}
}

func TestCreateRejectsUnapprovedProvider(t *testing.T) {
	f := newFixture(t).quiet()
	services, err := f.repos.Services.ListByProvider(f.ctx, "prov-pending")
	if err != nil || len(services) != 1 {
		t.Fatalf("expected the pending provider's service, got %v, %v", services, err)
	}
	in := f.input(userID, "10:00")
	in.ServiceID = services[0].ID

	_, err = f.svc.Create(f.ctx, in)
	expectKind(t, err, utils.KindValidation)
}

func TestCreateTodayAfterStart(t *testing.T) {
	f := newFixture(t).quiet()
	f.now = time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)

	_, err := f.svc.Create(f.ctx, f.input(userID, "10:00"))
	expectKind(t, err, utils.KindValidation)

	if _, err := f.svc.Create(f.ctx, f.input(userID, "11:00")); err != nil {
		t.Fatalf("later start today should be accepted: %v", err)
	}
}

func TestCreatePending(t *testing.T) {
	f := newFixture(t)
	f.expiry.EXPECT().Arm(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().Notify(gomock.Any(), providerID, userID, "New booking request", gomock.Any()).Return(nil)
	f.addresses.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, addr *models.Address) error {
		if addr.OwnerID != userID || addr.Line != "12 Main St" {
			t.Errorf("unexpected address %+v", addr)
		}
		return nil
	})
	f.images.EXPECT().Upload(gomock.Any(), gomock.Any(), "door.jpg").DoAndReturn(func(_ context.Context, r io.Reader, _ string) (string, error) {
		b, _ := io.ReadAll(r)
		if string(b) != "jpeg" {
			t.Errorf("unexpected image bytes %q", b)
		}
		return "https://img.example/door.jpg", nil
	})

	in := f.input(userID, "2:30 PM")
	in.Address = " 12 Main St "
	in.Image = &models.ImageUpload{Filename: "door.jpg", Data: []byte("jpeg")}

	res, err := f.svc.Create(f.ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Status != models.StatusPending || res.StartTime != "14:30" || res.EndTime != "" {
		t.Fatalf("unexpected reservation %+v", res)
	}
	if res.ProviderID != providerID || res.ImageURL != "https://img.example/door.jpg" {
		t.Fatalf("provider or image not recorded: %+v", res)
	}

	stored, err := f.repos.Reservations.GetByID(f.ctx, res.ID)
	if err != nil || stored.ImageURL != res.ImageURL || stored.Address != "12 Main St" {
		t.Fatalf("stored reservation differs: %+v, %v", stored, err)
	}
}

func TestCreateSurvivesSideEffectFailures(t *testing.T) {
	f := newFixture(t)
	f.expiry.EXPECT().Arm(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("queue down"))
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("fcm down"))
	f.addresses.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	f.images.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("cdn down"))

	in := f.input(userID, "10:00")
	in.Image = &models.ImageUpload{Filename: "x.jpg", Data: []byte("x")}
	res, err := f.svc.Create(f.ctx, in)
	if err != nil {
		t.Fatalf("side effects must not fail the booking: %v", err)
	}
	if res.ImageURL != "" {
		t.Fatalf("failed upload left a url: %q", res.ImageURL)
	}
}

func TestCreateOneActivePerRequesterAndService(t *testing.T) {
	f := newFixture(t).quiet()

	first := f.create(userID, "10:00")
	_, err := f.svc.Create(f.ctx, f.input(userID, "13:00"))
	expectKind(t, err, utils.KindConflict)

	if _, err := f.svc.UpdateStatus(f.ctx, providerID, first.ID, models.StatusUpdateInput{Status: "rejected"}); err != nil {
		t.Fatalf("reject: %v", err)
	}
	second := f.create(userID, "13:00")

	f.confirm(second.ID, "14:00")
	_, err = f.svc.Create(f.ctx, f.input(userID, "15:00"))
	expectKind(t, err, utils.KindConflict)

	if _, err := f.progress(second.ID, models.ProgressPatch{JobInProgress: models.Bool(true)}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	f.create(userID, "15:00")
}

func TestCreateBlockedByConfirmedSlot(t *testing.T) {
	f := newFixture(t).quiet()

	held := f.create(userID, "10:00")
	// A pending request does not hold the slot.
	waiting := f.create(otherUser, "10:00")
	if err := f.svc.Delete(f.ctx, asOther, waiting.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	f.confirm(held.ID, "11:00")

	_, err := f.svc.Create(f.ctx, f.input(otherUser, "10:30"))
	expectKind(t, err, utils.KindConflict)

	if _, err := f.svc.Create(f.ctx, f.input(otherUser, "11:00")); err != nil {
		t.Fatalf("slot right after the confirmed booking should be free: %v", err)
	}
}

func TestCreateConcurrentDuplicates(t *testing.T) {
	f := newFixture(t).quiet()

	const attempts = 6
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			_, err := f.svc.Create(f.ctx, f.input(userID, "10:00"))
			errs <- err
		}()
	}
	created := 0
	for i := 0; i < attempts; i++ {
		err := <-errs
		switch {
		case err == nil:
			created++
		case !utils.IsKind(err, utils.KindConflict):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Fatalf("expected exactly one booking, got %d", created)
	}
}
