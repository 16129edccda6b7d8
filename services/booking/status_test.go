package booking_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/mock/gomock"
)

func TestConfirmValidation(t *testing.T) {
	f := newFixture(t).quiet()
	res := f.create(userID, "10:00")

	tests := []struct {
		name string
		in   models.StatusUpdateInput
		kind utils.ErrorKind
	}{
		{name: "unknown status", in: models.StatusUpdateInput{Status: "MAYBE"}, kind: utils.KindValidation},
		{name: "missing end time", in: models.StatusUpdateInput{Status: "CONFIRMED", WorkNote: "x"}, kind: utils.KindValidation},
		{name: "missing work note", in: models.StatusUpdateInput{Status: "CONFIRMED", EndTime: "11:00", WorkNote: "  "}, kind: utils.KindValidation},
		{name: "end before start", in: models.StatusUpdateInput{Status: "CONFIRMED", EndTime: "09:30", WorkNote: "x"}, kind: utils.KindValidation},
		{name: "end equals start", in: models.StatusUpdateInput{Status: "CONFIRMED", EndTime: "10:00", WorkNote: "x"}, kind: utils.KindValidation},
		{name: "completed via status", in: models.StatusUpdateInput{Status: "COMPLETED"}, kind: utils.KindConflict},
		{name: "back to pending", in: models.StatusUpdateInput{Status: "PENDING"}, kind: utils.KindConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.UpdateStatus(f.ctx, providerID, res.ID, tt.in)
			expectKind(t, err, tt.kind)
		})
	}

	_, err := f.svc.UpdateStatus(f.ctx, userID, res.ID, models.StatusUpdateInput{Status: "REJECTED"})
	expectKind(t, err, utils.KindAuthorization)

	_, err = f.svc.UpdateStatus(f.ctx, providerID, "missing", models.StatusUpdateInput{Status: "REJECTED"})
	expectKind(t, err, utils.KindNotFound)

	stored, _ := f.repos.Reservations.GetByID(f.ctx, res.ID)
	if stored.Status != models.StatusPending || stored.Revision != res.Revision {
		t.Fatalf("failed updates must not write, got %+v", stored)
	}
}

func TestConfirmIssuesCompletionCode(t *testing.T) {
	f := newFixture(t)
	f.expiry.EXPECT().Arm(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.addresses.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().Notify(gomock.Any(), providerID, userID, "New booking request", gomock.Any()).Return(nil)

	res := f.create(userID, "10:00")

	var code int
	f.expiry.EXPECT().Disarm(gomock.Any(), res.ID).Return(nil)
	f.mailer.EXPECT().SendOTP(gomock.Any(), "provider@example.com", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, c int) error {
			code = c
			return nil
		})
	f.notifier.EXPECT().Notify(gomock.Any(), userID, providerID, "Booking confirmed", gomock.Any()).Return(nil)

	confirmed, err := f.svc.UpdateStatus(f.ctx, providerID, res.ID, models.StatusUpdateInput{
		Status: "confirmed", EndTime: "11:30 AM", WorkNote: " two rooms ",
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != models.StatusConfirmed || confirmed.EndTime != "11:30" || confirmed.WorkNote != "two rooms" {
		t.Fatalf("unexpected confirmed reservation %+v", confirmed)
	}
	if code < 100000 || code > 999999 {
		t.Fatalf("completion code should have six digits, got %d", code)
	}
	if confirmed.OTPHash == "" || confirmed.OTPHash == strconv.Itoa(code) {
		t.Fatalf("completion code must be stored hashed, got %q", confirmed.OTPHash)
	}
	if !utils.VerifyOTP(confirmed.OTPHash, strconv.Itoa(code)) {
		t.Fatal("stored hash does not match the emailed code")
	}

	_, err = f.svc.UpdateStatus(f.ctx, providerID, res.ID, models.StatusUpdateInput{Status: "REJECTED"})
	expectKind(t, err, utils.KindConflict)
}

func TestRejectIsTerminal(t *testing.T) {
	f := newFixture(t).quiet()
	res := f.create(userID, "10:00")

	rejected, err := f.svc.UpdateStatus(f.ctx, providerID, res.ID, models.StatusUpdateInput{Status: "REJECTED"})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != models.StatusRejected || rejected.HasOTP() {
		t.Fatalf("unexpected rejected reservation %+v", rejected)
	}

	_, err = f.svc.UpdateStatus(f.ctx, providerID, res.ID, models.StatusUpdateInput{
		Status: "CONFIRMED", EndTime: "11:00", WorkNote: "x",
	})
	expectKind(t, err, utils.KindConflict)
}

func TestConfirmRejectsOverlap(t *testing.T) {
	f := newFixture(t).quiet()
	first := f.create(userID, "10:00")
	second := f.create(otherUser, "10:30")

	f.confirm(first.ID, "11:00")

	_, err := f.svc.UpdateStatus(f.ctx, providerID, second.ID, models.StatusUpdateInput{
		Status: "CONFIRMED", EndTime: "11:30", WorkNote: "x",
	})
	expectKind(t, err, utils.KindConflict)

	stored, _ := f.repos.Reservations.GetByID(f.ctx, second.ID)
	if stored.Status != models.StatusPending {
		t.Fatalf("overlapping confirmation must not be written, got %s", stored.Status)
	}
}

type lockerFunc func(ctx context.Context, key string, ttl time.Duration) (func(), error)

func (f lockerFunc) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	return f(ctx, key, ttl)
}

func TestConfirmLockFailures(t *testing.T) {
	f := newFixture(t).quiet()
	res := f.create(userID, "10:00")
	confirm := models.StatusUpdateInput{Status: "CONFIRMED", EndTime: "11:00", WorkNote: "bring ladder"}

	f.svc.Locker = lockerFunc(func(context.Context, string, time.Duration) (func(), error) {
		return nil, utils.ErrLockBusy
	})
	_, err := f.svc.UpdateStatus(f.ctx, providerID, res.ID, confirm)
	expectKind(t, err, utils.KindConflict)

	outage := errors.New("redis: connection refused")
	f.svc.Locker = lockerFunc(func(context.Context, string, time.Duration) (func(), error) {
		return nil, outage
	})
	_, err = f.svc.UpdateStatus(f.ctx, providerID, res.ID, confirm)
	var appErr *utils.AppError
	if !errors.Is(err, outage) || errors.As(err, &appErr) {
		t.Fatalf("a lock backend failure must surface as an internal error, got %v", err)
	}
	_, err = f.svc.Create(f.ctx, f.input(otherUser, "12:00"))
	if !errors.Is(err, outage) || errors.As(err, &appErr) {
		t.Fatalf("create must report the lock failure as internal, got %v", err)
	}

	stored, _ := f.repos.Reservations.GetByID(f.ctx, res.ID)
	if stored.Status != models.StatusPending {
		t.Fatalf("nothing may be written without the lock, got %s", stored.Status)
	}
}
