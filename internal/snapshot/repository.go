package snapshot

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewLocationRepository creates a repository for location records keyed by slug.
func NewLocationRepository(db *bun.DB) repository.Repository[*LocationRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*LocationRecord]{
		NewRecord: func() *LocationRecord { return &LocationRecord{} },
		GetID: func(l *LocationRecord) uuid.UUID {
			return l.ID
		},
		SetID: func(l *LocationRecord, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(l *LocationRecord) string {
			return l.Slug
		},
	})
}

// NewTripDayRepository creates a repository for trip day records keyed by date.
func NewTripDayRepository(db *bun.DB) repository.Repository[*TripDayRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TripDayRecord]{
		NewRecord: func() *TripDayRecord { return &TripDayRecord{} },
		GetID: func(d *TripDayRecord) uuid.UUID {
			return d.ID
		},
		SetID: func(d *TripDayRecord, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "date"
		},
		GetIdentifierValue: func(d *TripDayRecord) string {
			return d.Date
		},
	})
}
