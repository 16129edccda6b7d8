package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"slotwise/database/dbtest"
	"slotwise/database/repository"
	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/services/booking"
	mock_booking "slotwise/services/booking/mocks"
	"slotwise/utils"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	monday     = "2025-06-02"
	providerID = "prov-1"
	userID     = "user-1"
	otherUser  = "user-2"
	adminID    = "admin-1"
)

var (
	asUser     = utils.Caller{ID: userID, Role: utils.RoleUser}
	asOther    = utils.Caller{ID: otherUser, Role: utils.RoleUser}
	asProvider = utils.Caller{ID: providerID, Role: utils.RoleProvider}
	asAdmin    = utils.Caller{ID: adminID, Role: utils.RoleAdmin}
)

type fixture struct {
	t         *testing.T
	ctx       context.Context
	svc       *booking.DefaultBookingService
	repos     *repository.Repositories
	db        *gorm.DB
	serviceID string
	now       time.Time

	notifier  *mock_booking.MockNotifier
	mailer    *mock_booking.MockOTPMailer
	images    *mock_booking.MockImageStore
	addresses *mock_booking.MockAddressBook
	expiry    *mock_booking.MockExpiryScheduler
	tier      *mock_booking.MockTierRecomputer

	mu       sync.Mutex
	lastCode int
}

// newFixture builds a booking service over SQLite with a provider whose
// service opens Mondays 09:00-17:00. The clock reads Sunday 08:00 UTC.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	repos, db := dbtest.Repositories(t)

	f := &fixture{
		t:         t,
		ctx:       context.Background(),
		repos:     repos,
		db:        db,
		now:       time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		notifier:  mock_booking.NewMockNotifier(ctrl),
		mailer:    mock_booking.NewMockOTPMailer(ctrl),
		images:    mock_booking.NewMockImageStore(ctrl),
		addresses: mock_booking.NewMockAddressBook(ctrl),
		expiry:    mock_booking.NewMockExpiryScheduler(ctrl),
		tier:      mock_booking.NewMockTierRecomputer(ctrl),
	}

	dbtest.SeedAccount(t, db, models.Account{ID: userID, Role: utils.RoleUser, Status: models.AccountActive})
	dbtest.SeedAccount(t, db, models.Account{ID: otherUser, Role: utils.RoleUser, Status: models.AccountActive})
	dbtest.SeedAccount(t, db, models.Account{ID: "user-suspended", Role: utils.RoleUser, Status: "suspended"})
	dbtest.SeedAccount(t, db, models.Account{ID: adminID, Role: utils.RoleAdmin, Status: models.AccountActive})
	dbtest.SeedAccount(t, db, models.Account{ID: providerID, Role: utils.RoleProvider, Status: models.AccountActive,
		Email: "provider@example.com", VerificationStatus: models.VerificationApproved})
	dbtest.SeedAccount(t, db, models.Account{ID: "prov-pending", Role: utils.RoleProvider, Status: models.AccountActive,
		VerificationStatus: "pending"})

	avail := availability.NewAvailabilityService(repos.Services, repos.Reservations, time.UTC, zap.NewNop())
	monOpen := []models.AvailabilityDay{{Weekday: time.Monday, IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"}}
	svc, _, err := avail.CreateService(f.ctx, providerID, "Cleaning", monOpen)
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	f.serviceID = svc.ID
	if _, _, err := avail.CreateService(f.ctx, "prov-pending", "Gardening", monOpen); err != nil {
		t.Fatalf("create service: %v", err)
	}

	f.svc = booking.NewBookingService(booking.Deps{
		Reservations: repos.Reservations,
		Services:     repos.Services,
		Directory:    repos.Directory,
		Windows:      avail,
		Locker:       utils.NewMemoryLocker(time.Second),
		Expiry:       f.expiry,
		Tier:         f.tier,
		Notifier:     f.notifier,
		Mailer:       f.mailer,
		Images:       f.images,
		Addresses:    f.addresses,
	}, time.UTC, 0, zap.NewNop())
	f.svc.Now = func() time.Time { return f.now }
	return f
}

// quiet accepts every side effect the test does not assert on. The mailer
// captures the last completion code.
func (f *fixture) quiet() *fixture {
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.expiry.EXPECT().Arm(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.expiry.EXPECT().Disarm(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.addresses.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.mailer.EXPECT().SendOTP(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, code int) error {
			f.mu.Lock()
			f.lastCode = code
			f.mu.Unlock()
			return nil
		}).AnyTimes()
	return f
}

func (f *fixture) code() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCode
}

func (f *fixture) input(requester, start string) models.CreateReservationInput {
	return models.CreateReservationInput{
		RequesterID: requester,
		ServiceID:   f.serviceID,
		Date:        monday,
		StartTime:   start,
		Latitude:    models.Float(0),
		Longitude:   models.Float(0),
	}
}

func (f *fixture) create(requester, start string) *models.Reservation {
	f.t.Helper()
	res, err := f.svc.Create(f.ctx, f.input(requester, start))
	if err != nil {
		f.t.Fatalf("create %s at %s: %v", requester, start, err)
	}
	return res
}

func (f *fixture) confirm(id, end string) *models.Reservation {
	f.t.Helper()
	res, err := f.svc.UpdateStatus(f.ctx, providerID, id, models.StatusUpdateInput{
		Status: "CONFIRMED", EndTime: end, WorkNote: "bring ladder",
	})
	if err != nil {
		f.t.Fatalf("confirm %s: %v", id, err)
	}
	return res
}

func (f *fixture) progress(id string, patch models.ProgressPatch) (*models.Reservation, error) {
	return f.svc.UpdateProgress(f.ctx, providerID, id, patch)
}

func expectKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	if !utils.IsKind(err, kind) {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
}
