// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/outpostlabs/go-location-backend/internal/domain"
)

// LocationsStats returns aggregate metadata for an owner's locations: the
// total number of rows and the maximum CreatedAt timestamp among those rows.
//
// It executes two lightweight queries scoped to the owner. When the owner has
// no locations, the returned count is 0 and maxCreatedAt is nil.
//
// Return values:
//   - count:        total locations for ownerID
//   - maxCreatedAt: pointer to the greatest CreatedAt, or nil if no rows
//   - err:          database error, if any
func LocationsStats(ctx context.Context, db *gorm.DB, ownerID string) (count int64, maxCreatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Location{}).Where("owner_id = ?", ownerID)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
