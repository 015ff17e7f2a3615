package repositories

import (
	"context"

	"gorm.io/gorm"

	"hechonl_backend/internal/events"
	"hechonl_backend/internal/logger"
)

// Store groups the repositories over one database and change bus.
type Store struct {
	db  *gorm.DB
	bus *events.Bus

	Users      UserRepository
	Businesses BusinessRepository
	Settings   SettingRepository
}

func NewStore(db *gorm.DB, bus *events.Bus) *Store {
	return newStore(db, bus, busSink{bus: bus})
}

func newStore(db *gorm.DB, bus *events.Bus, sink changeSink) *Store {
	return &Store{
		db:         db,
		bus:        bus,
		Users:      &UserRepositoryImpl{db: db, sink: sink},
		Businesses: &BusinessRepositoryImpl{db: db, sink: sink},
		Settings:   &SettingRepositoryImpl{db: db, sink: sink},
	}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Bus() *events.Bus {
	return s.bus
}

// Batch runs fn against a transaction-scoped store and commits once.
// Change events are published only after the commit; a batch that
// mutated nothing publishes nothing. Any error rolls the batch back.
func (s *Store) Batch(ctx context.Context, fn func(tx *Store) error) error {
	pending := &pendingSink{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newStore(tx, s.bus, pending))
	})
	if err != nil {
		pending.drain()
		logger.CtxWithError(ctx, "store batch rolled back", err)
		return err
	}

	changes := pending.drain()
	if len(changes) == 0 {
		return nil
	}
	if s.bus != nil {
		for _, ev := range changes {
			s.bus.Publish(ev)
		}
	}
	logger.CtxDebug(ctx, "store batch committed", "changes", len(changes))
	return nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
