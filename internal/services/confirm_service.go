// Package services – ConfirmationService
//
// This file implements the two-step confirm/cancel workflow that gates
// outbound notifications. Each owner holds at most one pending candidate: a
// newer proposal silently replaces an older one, because only the most recent
// unconfirmed intent is meaningful. Candidates expire after a TTL and are
// purged both lazily (on access) and by a periodic sweep.
//
// Confirming persists the candidate through the location store and then
// attempts exactly one notification dispatch. The two outcomes are reported
// independently: a save can succeed while the notification fails, and the
// caller is told about each. When the save itself fails, the pending entry is
// retained so the owner can retry confirm without re-proposing.
package services

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/outpostlabs/go-location-backend/internal/domain"
)

// registryShards is the number of independently locked segments of the
// pending map. Operations for owners on different shards never contend.
const registryShards = 16

// LocationSaver is the slice of LocationService the workflow needs.
type LocationSaver interface {
	Save(ctx context.Context, ownerID, ownerName, name string, x, y, z int, world, biome string) (*domain.Location, error)
}

// Dispatcher is the outbound notification surface consumed on confirm.
// Enabled reports whether a destination is configured at all; Send performs
// exactly one attempt and returns a typed error on failure.
type Dispatcher interface {
	Enabled() bool
	Send(ctx context.Context, loc *domain.Location, note string) error
}

// DispatchStatus describes the notification outcome of a confirm,
// independent of the persistence outcome.
type DispatchStatus string

const (
	// DispatchSent means the webhook accepted the payload.
	DispatchSent DispatchStatus = "sent"
	// DispatchDisabled means no destination is configured; nothing was sent.
	DispatchDisabled DispatchStatus = "disabled"
	// DispatchFailed means the single attempt failed; the location is still saved.
	DispatchFailed DispatchStatus = "failed"
)

// ConfirmResult is the consolidated outcome of a successful confirm: the
// persisted location plus the notification status (and its error, if any).
type ConfirmResult struct {
	Location    *domain.Location
	Dispatch    DispatchStatus
	DispatchErr error
}

// pendingEntry wraps a candidate in the registry. claimed marks an entry an
// in-flight confirm is working on, so a concurrent confirm for the same owner
// reports "nothing to confirm" instead of saving the candidate twice.
type pendingEntry struct {
	cand    domain.PendingLocation
	claimed bool
}

// registryShard is one lockable segment of the pending map.
type registryShard struct {
	mu      sync.Mutex
	entries map[string]*pendingEntry
}

// ConfirmationService holds pending candidates and drives the
// propose/confirm/cancel workflow against the store and the dispatcher.
// All methods are safe for concurrent use; per-owner operations are
// linearizable through the owning shard's mutex.
type ConfirmationService struct {
	Saver      LocationSaver
	Dispatcher Dispatcher

	// TTL is how long a proposal stays confirmable.
	TTL time.Duration

	shards [registryShards]registryShard

	// now is a test seam for clock control.
	now func() time.Time
}

// NewConfirmationService constructs a ConfirmationService with the given
// collaborators and candidate lifetime.
func NewConfirmationService(saver LocationSaver, d Dispatcher, ttl time.Duration) *ConfirmationService {
	s := &ConfirmationService{
		Saver:      saver,
		Dispatcher: d,
		TTL:        ttl,
		now:        time.Now,
	}
	for i := range s.shards {
		s.shards[i].entries = make(map[string]*pendingEntry)
	}
	return s
}

// shardFor maps an owner id onto its shard via FNV-1a.
func (s *ConfirmationService) shardFor(ownerID string) *registryShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ownerID))
	return &s.shards[h.Sum32()%registryShards]
}

// Propose stores a candidate for ownerID with a fresh timestamp,
// unconditionally replacing any previous pending entry for that owner. There
// is no error on overwrite: the later proposal wins. The stored candidate
// (with its timestamp and applied name default) is returned so callers can
// render it.
func (s *ConfirmationService) Propose(ownerID string, cand domain.PendingLocation) (*domain.PendingLocation, error) {
	if cand.World == "" {
		return nil, ErrMissingWorld
	}
	if cand.Biome == "" {
		return nil, ErrMissingBiome
	}
	cand.OwnerID = ownerID
	if cand.Name = normalizeName(cand.Name); cand.Name == "" {
		// The note doubles as the name when present, else a generated label.
		if cand.Name = normalizeName(cand.Note); cand.Name == "" {
			cand.Name = DefaultName(cand.X, cand.Y, cand.Z)
		}
	}
	cand.CreatedAt = s.now()

	sh := s.shardFor(ownerID)
	sh.mu.Lock()
	sh.entries[ownerID] = &pendingEntry{cand: cand}
	sh.mu.Unlock()

	stored := cand
	return &stored, nil
}

// Pending returns a copy of the owner's live pending candidate, if one exists
// and has not expired.
func (s *ConfirmationService) Pending(ownerID string) (*domain.PendingLocation, bool) {
	sh := s.shardFor(ownerID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[ownerID]
	if !ok || e.cand.ExpiredAt(s.now(), s.TTL) {
		return nil, false
	}
	cand := e.cand
	return &cand, true
}

// Confirm resolves the owner's pending candidate: it persists the candidate
// through the store, removes the entry, and then performs one notification
// attempt, reporting both outcomes in the result.
//
// Failure modes:
//   - No live entry (never proposed, expired, resolved, or being confirmed
//     concurrently): ErrNoPendingLocation.
//   - Store failure: the error is returned and the entry is retained so
//     confirm can be retried.
//   - Dispatch failure: not an error; the result carries DispatchFailed and
//     the underlying cause.
func (s *ConfirmationService) Confirm(ctx context.Context, ownerID string) (*ConfirmResult, error) {
	sh := s.shardFor(ownerID)

	sh.mu.Lock()
	e, ok := sh.entries[ownerID]
	if !ok || e.claimed || e.cand.ExpiredAt(s.now(), s.TTL) {
		sh.mu.Unlock()
		return nil, ErrNoPendingLocation
	}
	e.claimed = true
	cand := e.cand
	sh.mu.Unlock()

	loc, err := s.Saver.Save(ctx, cand.OwnerID, cand.OwnerName, cand.Name, cand.X, cand.Y, cand.Z, cand.World, cand.Biome)
	if err != nil {
		// Release the claim so the owner can retry, unless a newer proposal
		// has replaced the entry in the meantime.
		sh.mu.Lock()
		if cur, ok := sh.entries[ownerID]; ok && cur == e {
			cur.claimed = false
		}
		sh.mu.Unlock()
		return nil, err
	}

	// The candidate is persisted; drop the entry regardless of how the
	// dispatch below turns out. Leave any newer proposal untouched.
	sh.mu.Lock()
	if cur, ok := sh.entries[ownerID]; ok && cur == e {
		delete(sh.entries, ownerID)
	}
	sh.mu.Unlock()

	res := &ConfirmResult{Location: loc, Dispatch: DispatchDisabled}
	if s.Dispatcher != nil && s.Dispatcher.Enabled() {
		if derr := s.Dispatcher.Send(ctx, loc, cand.Note); derr != nil {
			log.Warn().
				Err(derr).
				Str("owner_id", ownerID).
				Int("location_id", loc.ID).
				Msg("location saved but webhook dispatch failed")
			res.Dispatch = DispatchFailed
			res.DispatchErr = derr
		} else {
			res.Dispatch = DispatchSent
		}
	}
	return res, nil
}

// Cancel discards the owner's pending candidate. It reports whether an entry
// was present; cancelling with nothing pending is a no-op.
func (s *ConfirmationService) Cancel(ownerID string) bool {
	sh := s.shardFor(ownerID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[ownerID]
	if !ok || e.cand.ExpiredAt(s.now(), s.TTL) {
		delete(sh.entries, ownerID)
		return false
	}
	delete(sh.entries, ownerID)
	return true
}

// SweepExpired removes every pending entry older than ttl relative to now and
// returns the number removed. It performs no I/O and holds each shard lock
// only for the duration of its scan.
func (s *ConfirmationService) SweepExpired(now time.Time, ttl time.Duration) int {
	removed := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for owner, e := range sh.entries {
			if e.cand.ExpiredAt(now, ttl) {
				delete(sh.entries, owner)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

// RunSweeper runs SweepExpired on a fixed interval until ctx is cancelled.
// Callers start it as a goroutine during boot and cancel the context on
// shutdown.
func (s *ConfirmationService) RunSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.SweepExpired(now, s.TTL); n > 0 {
				log.Debug().Int("removed", n).Msg("swept expired pending locations")
			}
		}
	}
}
