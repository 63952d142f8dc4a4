// Package routecache stores routing provider answers in the database so
// repeated origin and destination pairs do not cost another API call.
package routecache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shipquote/internal/core/domain/model/route"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RouteQuoteDTO is one cached quote, keyed by normalised origin and destination.
type RouteQuoteDTO struct {
	Origin          string    `gorm:"primaryKey"`
	Destination     string    `gorm:"primaryKey"`
	DistanceText    string    `gorm:"not null"`
	DistanceKm      float64   `gorm:"not null"`
	DurationSeconds int64     `gorm:"not null"`
	FetchedAt       time.Time `gorm:"not null;index"`
}

func (RouteQuoteDTO) TableName() string {
	return "route_quotes"
}

// GormQuoteCache keeps entries for ttl. A zero ttl keeps them forever.
type GormQuoteCache struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewGormQuoteCache(db *gorm.DB, ttl time.Duration) *GormQuoteCache {
	return &GormQuoteCache{db: db, ttl: ttl, now: time.Now}
}

func (c *GormQuoteCache) Get(ctx context.Context, origin, destination string) (route.Quote, bool, error) {
	if c.db == nil {
		return route.Quote{}, false, errors.New("route cache: db is nil")
	}

	var dto RouteQuoteDTO
	err := c.db.WithContext(ctx).
		Where("origin = ? AND destination = ?", origin, destination).
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return route.Quote{}, false, nil
	}
	if err != nil {
		return route.Quote{}, false, fmt.Errorf("get route cache: %w", err)
	}

	if c.ttl > 0 && c.now().Sub(dto.FetchedAt) > c.ttl {
		return route.Quote{}, false, nil
	}

	q, err := route.RestoreQuote(dto.DistanceText, dto.DistanceKm, time.Duration(dto.DurationSeconds)*time.Second)
	if err != nil {
		return route.Quote{}, false, fmt.Errorf("get route cache: %w", err)
	}
	return q, true, nil
}

// Put inserts or refreshes an entry.
func (c *GormQuoteCache) Put(ctx context.Context, origin, destination string, q route.Quote) error {
	if c.db == nil {
		return errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return errors.New("put route cache: origin and destination must not be empty")
	}
	if err := q.Validate(); err != nil {
		return err
	}

	dto := RouteQuoteDTO{
		Origin:          origin,
		Destination:     destination,
		DistanceText:    q.DistanceText(),
		DistanceKm:      q.DistanceKm(),
		DurationSeconds: int64(q.Duration() / time.Second),
		FetchedAt:       c.now().UTC(),
	}

	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "origin"}, {Name: "destination"}},
		DoUpdates: clause.AssignmentColumns([]string{"distance_text", "distance_km", "duration_seconds", "fetched_at"}),
	}).Create(&dto).Error
	if err != nil {
		return fmt.Errorf("put route cache: %w", err)
	}
	return nil
}

// Purge deletes entries older than the ttl and returns how many were removed.
func (c *GormQuoteCache) Purge(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}

	result := c.db.WithContext(ctx).
		Where("fetched_at < ?", c.now().UTC().Add(-c.ttl)).
		Delete(&RouteQuoteDTO{})
	return result.RowsAffected, result.Error
}
