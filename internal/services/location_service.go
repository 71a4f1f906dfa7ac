// Package services – LocationService
//
// This file implements the LocationService, which manages the lifecycle of
// saved locations. It validates and normalizes names, applies the default
// naming rule for unnamed candidates, and coordinates repository operations
// for saving, listing (with pagination), renaming, and deleting locations.
//
// Service-level errors (e.g., ErrLocationNotFound) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/outpostlabs/go-location-backend/internal/domain"
)

// LocationRepo defines the repository contract required by LocationService.
// Implementations are responsible for persistence of location rows and for
// monotonic per-owner identifier assignment.
type LocationRepo interface {
	// CreateLocation inserts a row and assigns the next id for the owner.
	CreateLocation(ctx context.Context, db *gorm.DB, ownerID, ownerName, name string, x, y, z int, world, biome string) (*domain.Location, error)

	// ListLocations returns all of an owner's locations in creation order.
	ListLocations(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.Location, error)

	// CountLocations returns the total number of locations for pagination.
	CountLocations(ctx context.Context, db *gorm.DB, ownerID string) (int64, error)

	// ListLocationsPage returns a page of an owner's locations in creation order.
	ListLocationsPage(ctx context.Context, db *gorm.DB, ownerID string, offset, limit int) ([]domain.Location, error)

	// GetLocationByID fetches one location by owner and id.
	GetLocationByID(ctx context.Context, db *gorm.DB, ownerID string, id int) (*domain.Location, error)

	// GetLocationByName fetches one location by owner and exact name.
	GetLocationByName(ctx context.Context, db *gorm.DB, ownerID, name string) (*domain.Location, error)

	// RenameLocation updates a location's name (only within the owner's scope).
	RenameLocation(ctx context.Context, db *gorm.DB, ownerID string, id int, name string) error

	// DeleteLocation removes a location; the freed id is never reassigned.
	DeleteLocation(ctx context.Context, db *gorm.DB, ownerID string, id int) error
}

// LocationService provides location-level operations such as saving, listing,
// renaming, and deleting. It enforces the naming rules and keeps identifier
// semantics (monotonic per owner) behind the repository.
type LocationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the location repository used by this service.
	Repo LocationRepo

	// NameMaxLen caps stored names by rune length.
	NameMaxLen int
}

// NewLocationService constructs a LocationService with sane defaults for
// name handling.
func NewLocationService(db *gorm.DB, r LocationRepo) *LocationService {
	return &LocationService{
		DB:         db,
		Repo:       r,
		NameMaxLen: 255,
	}
}

// Save persists a new location for ownerID, assigning the next per-owner id.
// Names are Unicode-normalized, trimmed, and clipped; an empty name falls
// back to "Location at x, y, z". World and biome must be non-empty.
func (s *LocationService) Save(ctx context.Context, ownerID, ownerName, name string, x, y, z int, world, biome string) (*domain.Location, error) {
	if strings.TrimSpace(world) == "" {
		return nil, ErrMissingWorld
	}
	if strings.TrimSpace(biome) == "" {
		return nil, ErrMissingBiome
	}
	name = normalizeName(name)
	if name == "" {
		name = DefaultName(x, y, z)
	}
	return s.Repo.CreateLocation(ctx, s.DB, ownerID, ownerName, s.clip(name), x, y, z, strings.TrimSpace(world), strings.TrimSpace(biome))
}

// List returns all locations for an owner in creation order (non-paginated).
// Prefer ListPage for scalability on large datasets.
func (s *LocationService) List(ctx context.Context, ownerID string) ([]domain.Location, error) {
	return s.Repo.ListLocations(ctx, s.DB, ownerID)
}

// ListPage returns a page of an owner's locations (creation order) along with
// the total count. It applies defaults for invalid page/pageSize.
func (s *LocationService) ListPage(ctx context.Context, ownerID string, page, pageSize int) ([]domain.Location, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountLocations(ctx, s.DB, ownerID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Location{}, 0, nil
	}

	items, err := s.Repo.ListLocationsPage(ctx, s.DB, ownerID, offset, pageSize)
	return items, total, err
}

// Resolve fetches the location addressed by key within the owner's scope.
// A key that matches nothing resolves to ErrLocationNotFound; it is never a
// system fault.
func (s *LocationService) Resolve(ctx context.Context, ownerID string, key LookupKey) (*domain.Location, error) {
	var (
		loc *domain.Location
		err error
	)
	if key.byID {
		loc, err = s.Repo.GetLocationByID(ctx, s.DB, ownerID, key.id)
	} else {
		loc, err = s.Repo.GetLocationByName(ctx, s.DB, ownerID, key.name)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return loc, nil
}

// Rename updates the name of the location addressed by key. The new name is
// normalized and clipped; a blank name falls back to "Untitled". Returns
// ErrLocationNotFound when the key matches nothing.
func (s *LocationService) Rename(ctx context.Context, ownerID string, key LookupKey, newName string) error {
	newName = normalizeName(newName)
	if newName == "" {
		newName = "Untitled"
	}
	loc, err := s.Resolve(ctx, ownerID, key)
	if err != nil {
		return err
	}
	if err := s.Repo.RenameLocation(ctx, s.DB, ownerID, loc.ID, s.clip(newName)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		return err
	}
	return nil
}

// Delete removes the location addressed by key. A second delete of the same
// location reports ErrLocationNotFound rather than succeeding silently.
func (s *LocationService) Delete(ctx context.Context, ownerID string, key LookupKey) error {
	loc, err := s.Resolve(ctx, ownerID, key)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteLocation(ctx, s.DB, ownerID, loc.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		return err
	}
	return nil
}

// DefaultName is the generated label for an unnamed candidate.
func DefaultName(x, y, z int) string {
	return fmt.Sprintf("Location at %d, %d, %d", x, y, z)
}

// clip truncates a name to the configured maximum rune length.
func (s *LocationService) clip(name string) string {
	if s.NameMaxLen > 0 && utf8.RuneCountInString(name) > s.NameMaxLen {
		return string([]rune(name)[:s.NameMaxLen])
	}
	return name
}

// normalizeName trims whitespace, collapses runs of it to a single space, and
// applies NFC so visually identical names compare equal in name lookups.
func normalizeName(s string) string {
	s = whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
	return norm.NFC.String(s)
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)
