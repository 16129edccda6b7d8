package repository

import (
	"context"

	addressRepo "slotwise/database/repository/address"
	directoryRepo "slotwise/database/repository/directory"
	reservationRepo "slotwise/database/repository/reservation"
	serviceRepo "slotwise/database/repository/service"
	tierRepo "slotwise/database/repository/tier"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Repositories groups every store the services depend on, backed by one driver.
type Repositories struct {
	Reservations reservationRepo.ReservationRepository
	Services     serviceRepo.ServiceRepository
	Tiers        tierRepo.TierRepository
	Directory    directoryRepo.Directory
	Addresses    addressRepo.AddressBook

	ensureIndexes func(ctx context.Context) error
}

// NewMongoRepositories builds the Mongo-backed repositories.
func NewMongoRepositories(db *mongo.Database) *Repositories {
	reservations := reservationRepo.NewMongoReservationRepo(db)
	services := serviceRepo.NewMongoServiceRepo(db)
	tiers := tierRepo.NewMongoTierRepo(db)
	return &Repositories{
		Reservations: reservations,
		Services:     services,
		Tiers:        tiers,
		Directory:    directoryRepo.NewMongoDirectory(db),
		Addresses:    addressRepo.NewMongoAddressBook(db),
		ensureIndexes: func(ctx context.Context) error {
			if err := reservations.EnsureIndexes(ctx); err != nil {
				return err
			}
			if err := services.EnsureIndexes(ctx); err != nil {
				return err
			}
			return tiers.EnsureIndexes(ctx)
		},
	}
}

// NewGormRepositories builds the SQL-backed repositories. The schema is
// migrated by database.Migrate.
func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Reservations: reservationRepo.NewGormReservationRepo(db),
		Services:     serviceRepo.NewGormServiceRepo(db),
		Tiers:        tierRepo.NewGormTierRepo(db),
		Directory:    directoryRepo.NewGormDirectory(db),
		Addresses:    addressRepo.NewGormAddressBook(db),
	}
}

// EnsureIndexes is a no-op for drivers that manage their schema elsewhere.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	if r.ensureIndexes == nil {
		return nil
	}
	return r.ensureIndexes(ctx)
}
