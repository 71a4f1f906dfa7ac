// Package domain defines the persistence model for saved locations and the
// in-memory candidate type used by the confirmation workflow. Location is
// mapped with GORM and forms the core data layer of the service.
package domain

import (
	"time"
)

// Location represents a named point of interest saved by an owner. Identifiers
// are scoped per owner and assigned monotonically by the repository: the set
// of ids for one owner only ever grows, and an id freed by a delete is never
// handed out again.
//
// Fields:
//   - ID: positive integer, unique within the owner scope (composite PK).
//   - OwnerID: opaque stable identifier of the owner; display names may change,
//     this must not.
//   - OwnerName: display name captured at creation time, used only for
//     notifications and rendering.
//   - Name: user-supplied or generated label; never empty.
//   - X/Y/Z: block coordinates, unconstrained.
//   - World / Biome: non-empty descriptive strings.
//   - CreatedAt: set once on insert, immutable afterwards.
type Location struct {
	OwnerID   string    `json:"owner_id"   gorm:"type:varchar(64);primaryKey"`
	ID        int       `json:"id"         gorm:"primaryKey;autoIncrement:false"`
	OwnerName string    `json:"owner_name" gorm:"type:varchar(64);not null"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Z         int       `json:"z"`
	World     string    `json:"world"      gorm:"type:varchar(128);not null"`
	Biome     string    `json:"biome"      gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Location.
func (Location) TableName() string { return "locations" }

// PendingLocation is an unsaved candidate held by the confirmation registry
// until the owner confirms, cancels, or the entry expires. It is never
// persisted; an id is assigned only when the candidate is confirmed and
// written through the store.
type PendingLocation struct {
	OwnerID   string    `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	Name      string    `json:"name"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Z         int       `json:"z"`
	World     string    `json:"world"`
	Biome     string    `json:"biome"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ExpiredAt reports whether the candidate is older than ttl relative to now.
func (p *PendingLocation) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(p.CreatedAt) > ttl
}
