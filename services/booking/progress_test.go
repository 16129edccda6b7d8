package booking_test

import (
	"strconv"
	"sync"
	"testing"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/mock/gomock"
)

func TestProgressNeedsConfirmedReservation(t *testing.T) {
	f := newFixture(t).quiet()
	res := f.create(userID, "10:00")

	_, err := f.progress(res.ID, models.ProgressPatch{Notes: models.String("on my way")})
	expectKind(t, err, utils.KindConflict)

	_, err = f.svc.UpdateProgress(f.ctx, userID, res.ID, models.ProgressPatch{Notes: models.String("x")})
	expectKind(t, err, utils.KindAuthorization)
}

func TestProgressLifecycle(t *testing.T) {
	f := newFixture(t).quiet()
	res := f.create(userID, "10:00")
	f.confirm(res.ID, "11:00")
	code := strconv.Itoa(f.code())

	_, err := f.progress(res.ID, models.ProgressPatch{OTPCode: models.String("000000")})
	expectKind(t, err, utils.KindValidation)

	updated, err := f.progress(res.ID, models.ProgressPatch{OTPCode: models.String(code), Notes: models.String("gate code 42")})
	if err != nil {
		t.Fatalf("verify code: %v", err)
	}
	if !updated.OTPVerified || updated.Notes != "gate code 42" || updated.Status != models.StatusConfirmed {
		t.Fatalf("unexpected progress %+v", updated)
	}

	completed, err := f.progress(res.ID, models.ProgressPatch{JobInProgress: models.Bool(true)})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != models.StatusCompleted || !completed.JobInProgress || completed.PaymentConfirmed {
		t.Fatalf("unexpected completed reservation %+v", completed)
	}

	_, err = f.progress(res.ID, models.ProgressPatch{Notes: models.String("late edit")})
	expectKind(t, err, utils.KindConflict)
	_, err = f.progress(res.ID, models.ProgressPatch{OTPCode: models.String(code)})
	expectKind(t, err, utils.KindConflict)
	_, err = f.progress(res.ID, models.ProgressPatch{JobInProgress: models.Bool(false)})
	expectKind(t, err, utils.KindConflict)

	f.tier.EXPECT().Recompute(gomock.Any(), providerID).Return(1, true, nil)
	paid, err := f.progress(res.ID, models.ProgressPatch{PaymentConfirmed: models.Bool(true)})
	if err != nil {
		t.Fatalf("confirm payment: %v", err)
	}
	if !paid.Done() {
		t.Fatalf("expected a done reservation, got %+v", paid)
	}

	_, err = f.progress(res.ID, models.ProgressPatch{PaymentConfirmed: models.Bool(false)})
	expectKind(t, err, utils.KindConflict)

	// Repeating the payment patch is a no-op and must not recompute again.
	again, err := f.progress(res.ID, models.ProgressPatch{PaymentConfirmed: models.Bool(true)})
	if err != nil || again.Revision != paid.Revision {
		t.Fatalf("repeat payment should not write, got %+v, %v", again, err)
	}
}

func TestProgressPaymentBeforeCompletion(t *testing.T) {
	f := newFixture(t).quiet()
	res := f.create(userID, "10:00")
	f.confirm(res.ID, "11:00")

	paid, err := f.progress(res.ID, models.ProgressPatch{PaymentConfirmed: models.Bool(true)})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if paid.Status != models.StatusConfirmed || paid.Done() {
		t.Fatalf("payment alone must not complete, got %+v", paid)
	}

	f.tier.EXPECT().Recompute(gomock.Any(), providerID).Return(0, false, nil).Times(1)
	done, err := f.progress(res.ID, models.ProgressPatch{JobInProgress: models.Bool(true)})
	if err != nil || !done.Done() {
		t.Fatalf("complete: %+v, %v", done, err)
	}
}

func TestTierRecomputedOncePerCompletion(t *testing.T) {
	f := newFixture(t).quiet()
	res := f.create(userID, "10:00")
	f.confirm(res.ID, "11:00")
	if _, err := f.progress(res.ID, models.ProgressPatch{JobInProgress: models.Bool(true)}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	f.tier.EXPECT().Recompute(gomock.Any(), providerID).Return(1, true, nil).Times(1)

	const writers = 6
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.progress(res.ID, models.ProgressPatch{PaymentConfirmed: models.Bool(true)})
			if err != nil && !utils.IsKind(err, utils.KindConflict) {
				t.Errorf("payment: %v", err)
			}
		}()
	}
	wg.Wait()

	stored, _ := f.repos.Reservations.GetByID(f.ctx, res.ID)
	if !stored.Done() {
		t.Fatalf("reservation not done: %+v", stored)
	}
}

func TestProgressImages(t *testing.T) {
	f := newFixture(t).quiet()
	res := f.create(userID, "10:00")
	f.confirm(res.ID, "11:00")

	f.images.EXPECT().Upload(gomock.Any(), gomock.Any(), "pickup.jpg").Return("https://img.example/p.jpg", nil)
	f.images.EXPECT().Upload(gomock.Any(), gomock.Any(), "drop.jpg").Return("https://img.example/d.jpg", nil)

	updated, err := f.progress(res.ID, models.ProgressPatch{
		PickupImage:   &models.ImageUpload{Filename: "pickup.jpg", Data: []byte("p"), Latitude: models.Float(1), Longitude: models.Float(2)},
		DeliveryImage: &models.ImageUpload{Filename: "drop.jpg", Data: []byte("d")},
	})
	if err != nil {
		t.Fatalf("images: %v", err)
	}
	if len(updated.Images) != 2 {
		t.Fatalf("expected two images, got %+v", updated.Images)
	}
	if updated.Images[0].Kind != models.ImagePickup || *updated.Images[0].Latitude != 1 {
		t.Fatalf("pickup image not geotagged: %+v", updated.Images[0])
	}
	if updated.Images[1].Kind != models.ImageDelivery || updated.Images[1].URL != "https://img.example/d.jpg" {
		t.Fatalf("unexpected delivery image %+v", updated.Images[1])
	}

	stored, _ := f.repos.Reservations.GetByID(f.ctx, res.ID)
	if len(stored.Images) != 2 {
		t.Fatalf("images not persisted: %+v", stored.Images)
	}
}
