// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Location
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Identifier policy: ids are assigned monotonically per owner
// (max(id)+1, starting at 1) and are never reused after a delete. The read
// of the current maximum and the insert happen inside one transaction, so
// concurrent saves for the same owner cannot be assigned the same id.
//
// Error semantics:
//   - When a location is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/outpostlabs/go-location-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateLocation inserts a new location for ownerID, assigning the next
// monotonic id within the owner's scope. CreatedAt is set to UTC.
//
// On success, it returns the persisted Location including its assigned id.
// On failure, it returns a DB error and nothing is written.
func CreateLocation(ctx context.Context, db *gorm.DB, ownerID, ownerName, name string, x, y, z int, world, biome string) (*domain.Location, error) {
	loc := &domain.Location{
		OwnerID:   ownerID,
		OwnerName: ownerName,
		Name:      name,
		X:         x,
		Y:         y,
		Z:         z,
		World:     world,
		Biome:     biome,
		CreatedAt: time.Now().UTC(),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID int
		row := tx.Model(&domain.Location{}).
			Where("owner_id = ?", ownerID).
			Select("COALESCE(MAX(id), 0)").
			Row()
		if err := row.Scan(&maxID); err != nil {
			return err
		}
		loc.ID = maxID + 1
		return tx.Create(loc).Error
	})
	if err != nil {
		return nil, err
	}
	return loc, nil
}

// ListLocations returns all locations belonging to ownerID in creation order
// (oldest first). Creation order is the order the owner saved them, which is
// stable even though ids may have gaps after deletes. It returns an empty
// slice when the owner has none.
func ListLocations(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.Location, error) {
	var out []domain.Location
	err := db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc, id asc").
		Find(&out).Error
	return out, err
}

// CountLocations returns the total number of locations owned by ownerID.
func CountLocations(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Location{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error
	return total, err
}

// ListLocationsPage returns a paginated slice of locations for ownerID in
// creation order. Use CountLocations to obtain the total for pagination
// metadata.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListLocationsPage(ctx context.Context, db *gorm.DB, ownerID string, offset, limit int) ([]domain.Location, error) {
	var out []domain.Location
	err := db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc, id asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetLocationByID fetches a single location by owner and id. If the record
// does not exist, it returns ErrNotFound. On other DB errors, the raw error
// is returned.
func GetLocationByID(ctx context.Context, db *gorm.DB, ownerID string, id int) (*domain.Location, error) {
	var loc domain.Location
	err := db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// GetLocationByName fetches a single location by owner and exact name match.
// When several rows share the name, the oldest wins. Returns ErrNotFound when
// nothing matches.
func GetLocationByName(ctx context.Context, db *gorm.DB, ownerID, name string) (*domain.Location, error) {
	var loc domain.Location
	err := db.WithContext(ctx).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Order("created_at asc, id asc").
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// RenameLocation updates the name of a location identified by owner and id.
// If no rows are affected (missing id or foreign owner), it returns
// ErrNotFound. On DB error, the raw error is returned.
func RenameLocation(ctx context.Context, db *gorm.DB, ownerID string, id int, name string) error {
	res := db.WithContext(ctx).
		Model(&domain.Location{}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteLocation removes a location identified by owner and id. The freed id
// is never reassigned. Returns ErrNotFound when no row matched, so a repeated
// delete of the same id reports failure rather than silently succeeding.
func DeleteLocation(ctx context.Context, db *gorm.DB, ownerID string, id int) error {
	res := db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&domain.Location{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
