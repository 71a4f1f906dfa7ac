package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/outpostlabs/go-location-backend/internal/domain"
	"github.com/outpostlabs/go-location-backend/internal/repo"
)

// locationRepoShim adapts the repository free functions to the LocationRepo
// interface, mirroring how the router wires the real service.
type locationRepoShim struct{}

func (locationRepoShim) CreateLocation(ctx context.Context, db *gorm.DB, ownerID, ownerName, name string, x, y, z int, world, biome string) (*domain.Location, error) {
	return repo.CreateLocation(ctx, db, ownerID, ownerName, name, x, y, z, world, biome)
}

func (locationRepoShim) ListLocations(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.Location, error) {
	return repo.ListLocations(ctx, db, ownerID)
}

func (locationRepoShim) CountLocations(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	return repo.CountLocations(ctx, db, ownerID)
}

func (locationRepoShim) ListLocationsPage(ctx context.Context, db *gorm.DB, ownerID string, offset, limit int) ([]domain.Location, error) {
	return repo.ListLocationsPage(ctx, db, ownerID, offset, limit)
}

func (locationRepoShim) GetLocationByID(ctx context.Context, db *gorm.DB, ownerID string, id int) (*domain.Location, error) {
	return repo.GetLocationByID(ctx, db, ownerID, id)
}

func (locationRepoShim) GetLocationByName(ctx context.Context, db *gorm.DB, ownerID, name string) (*domain.Location, error) {
	return repo.GetLocationByName(ctx, db, ownerID, name)
}

func (locationRepoShim) RenameLocation(ctx context.Context, db *gorm.DB, ownerID string, id int, name string) error {
	return repo.RenameLocation(ctx, db, ownerID, id, name)
}

func (locationRepoShim) DeleteLocation(ctx context.Context, db *gorm.DB, ownerID string, id int) error {
	return repo.DeleteLocation(ctx, db, ownerID, id)
}

func newLocationService(t *testing.T) *LocationService {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("location_service_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.Location{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return NewLocationService(db, locationRepoShim{})
}

func TestSave_DefaultsAndValidation(t *testing.T) {
	svc := newLocationService(t)
	ctx := context.Background()

	// Empty name falls back to the generated label.
	loc, err := svc.Save(ctx, "o1", "Olwen", "   ", 10, 64, -5, "overworld", "PLAINS")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if loc.Name != "Location at 10, 64, -5" {
		t.Fatalf("expected generated name, got %q", loc.Name)
	}
	if loc.ID != 1 {
		t.Fatalf("expected first id=1, got %d", loc.ID)
	}

	// Whitespace runs collapse.
	loc2, err := svc.Save(ctx, "o1", "Olwen", "  my \t  base  ", 0, 0, 0, "overworld", "PLAINS")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if loc2.Name != "my base" {
		t.Fatalf("expected collapsed name, got %q", loc2.Name)
	}

	// Missing world/biome are rejected before touching the store.
	if _, err := svc.Save(ctx, "o1", "Olwen", "x", 0, 0, 0, " ", "PLAINS"); !errors.Is(err, ErrMissingWorld) {
		t.Fatalf("expected ErrMissingWorld, got %v", err)
	}
	if _, err := svc.Save(ctx, "o1", "Olwen", "x", 0, 0, 0, "overworld", ""); !errors.Is(err, ErrMissingBiome) {
		t.Fatalf("expected ErrMissingBiome, got %v", err)
	}
}

func TestSave_ClipsLongNames(t *testing.T) {
	svc := newLocationService(t)
	svc.NameMaxLen = 10

	long := "abcdefghijKLMNOP"
	loc, err := svc.Save(context.Background(), "o1", "O", long, 0, 0, 0, "overworld", "PLAINS")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if loc.Name != "abcdefghij" {
		t.Fatalf("expected clipped name, got %q", loc.Name)
	}
}

func TestListAndListPage(t *testing.T) {
	svc := newLocationService(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if _, err := svc.Save(ctx, "o1", "O", fmt.Sprintf("loc-%d", i), i, 0, 0, "overworld", "PLAINS"); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	all, err := svc.List(ctx, "o1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 5 || all[0].Name != "loc-1" || all[4].Name != "loc-5" {
		t.Fatalf("expected 5 locations in creation order, got %+v", all)
	}

	// Invalid page/pageSize fall back to defaults.
	items, total, err := svc.ListPage(ctx, "o1", 0, -1)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 5 || len(items) != 5 {
		t.Fatalf("expected full first page, got total=%d len=%d", total, len(items))
	}

	items, total, err = svc.ListPage(ctx, "o1", 2, 2)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 5 || len(items) != 2 || items[0].Name != "loc-3" {
		t.Fatalf("unexpected second page: total=%d items=%+v", total, items)
	}

	// An owner with nothing gets an empty page, not an error.
	items, total, err = svc.ListPage(ctx, "nobody", 1, 20)
	if err != nil || total != 0 || len(items) != 0 {
		t.Fatalf("expected empty page, got items=%v total=%d err=%v", items, total, err)
	}
}

func TestResolve_ByIDAndByName(t *testing.T) {
	svc := newLocationService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "o1", "O", "Base", 1, 2, 3, "overworld", "PLAINS")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	byID, err := svc.Resolve(ctx, "o1", ParseKey(fmt.Sprintf(" %d ", saved.ID)))
	if err != nil || byID.Name != "Base" {
		t.Fatalf("resolve by id: %+v err=%v", byID, err)
	}

	byName, err := svc.Resolve(ctx, "o1", ParseKey("Base"))
	if err != nil || byName.ID != saved.ID {
		t.Fatalf("resolve by name: %+v err=%v", byName, err)
	}

	// Numeric input that matches no id is not-found, never a crash; same for
	// arbitrary text.
	if _, err := svc.Resolve(ctx, "o1", ParseKey("999")); !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound for unknown id, got %v", err)
	}
	if _, err := svc.Resolve(ctx, "o1", ParseKey("no-such-place")); !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound for unknown name, got %v", err)
	}
}

func TestRename_ByKeyAndFallbacks(t *testing.T) {
	svc := newLocationService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "o1", "O", "Base", 1, 2, 3, "overworld", "PLAINS")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := svc.Rename(ctx, "o1", KeyByName("Base"), "Outpost"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	got, err := svc.Resolve(ctx, "o1", KeyByID(saved.ID))
	if err != nil || got.Name != "Outpost" {
		t.Fatalf("rename not applied: %+v err=%v", got, err)
	}

	// Blank rename falls back to "Untitled".
	if err := svc.Rename(ctx, "o1", KeyByID(saved.ID), "  "); err != nil {
		t.Fatalf("Rename blank: %v", err)
	}
	got, _ = svc.Resolve(ctx, "o1", KeyByID(saved.ID))
	if got.Name != "Untitled" {
		t.Fatalf("expected Untitled, got %q", got.Name)
	}

	if err := svc.Rename(ctx, "o1", KeyByID(42), "x"); !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestDelete_ByKeyTwice(t *testing.T) {
	svc := newLocationService(t)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "o1", "O", "Base", 1, 2, 3, "overworld", "PLAINS")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := svc.Delete(ctx, "o1", KeyByID(saved.ID)); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if err := svc.Delete(ctx, "o1", KeyByID(saved.ID)); !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("second Delete must be not-found, got %v", err)
	}
}

func TestParseKey(t *testing.T) {
	if k := ParseKey("12"); !k.byID || k.id != 12 {
		t.Fatalf("expected numeric key, got %+v", k)
	}
	if k := ParseKey(" -3 "); !k.byID || k.id != -3 {
		t.Fatalf("expected numeric key with sign, got %+v", k)
	}
	if k := ParseKey("Base 2"); k.byID || k.name != "Base 2" {
		t.Fatalf("expected name key, got %+v", k)
	}
	if got := KeyByID(7).String(); got != "#7" {
		t.Fatalf("unexpected String(): %q", got)
	}
}
