// Location HTTP handlers.
//
// This file exposes the REST endpoints for the location workflow:
//   - POST   /locations/propose   (stage a candidate)
//   - POST   /locations/confirm   (persist the candidate, notify)
//   - POST   /locations/cancel    (discard the candidate)
//   - GET    /locations/pending   (inspect the candidate)
//   - GET    /locations           (list, paginated, ETag support)
//   - PUT    /locations/:key/name (rename by id or name)
//   - DELETE /locations/:key      (delete by id or name)
//
// Handlers are transport-thin: they resolve the owner identity, validate
// input, call the application services, and translate results (including the
// independent save/notify outcomes of a confirm) into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/outpostlabs/go-location-backend/internal/domain"
	"github.com/outpostlabs/go-location-backend/internal/http/middleware"
	"github.com/outpostlabs/go-location-backend/internal/repo"
	"github.com/outpostlabs/go-location-backend/internal/services"
	"github.com/outpostlabs/go-location-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// LocationStore defines the saved-location operations consumed by the HTTP
// layer. Implementations must be safe for concurrent use and honor the
// provided context.
type LocationStore interface {
	// List returns all of an owner's locations (legacy, non-paginated).
	List(ctx context.Context, ownerID string) ([]domain.Location, error)
	// ListPage returns a page of an owner's locations and the total count.
	ListPage(ctx context.Context, ownerID string, page, pageSize int) ([]domain.Location, int64, error)
	// Resolve fetches the location addressed by key.
	Resolve(ctx context.Context, ownerID string, key services.LookupKey) (*domain.Location, error)
	// Rename updates the name of the location addressed by key.
	Rename(ctx context.Context, ownerID string, key services.LookupKey, newName string) error
	// Delete removes the location addressed by key.
	Delete(ctx context.Context, ownerID string, key services.LookupKey) error
}

// ConfirmWorkflow defines the two-step propose/confirm/cancel operations.
type ConfirmWorkflow interface {
	// Propose stages a candidate, replacing any previous one for the owner.
	Propose(ownerID string, cand domain.PendingLocation) (*domain.PendingLocation, error)
	// Pending returns the owner's live candidate, if any.
	Pending(ownerID string) (*domain.PendingLocation, bool)
	// Confirm persists the candidate and attempts one notification.
	Confirm(ctx context.Context, ownerID string) (*services.ConfirmResult, error)
	// Cancel discards the candidate, reporting whether one existed.
	Cancel(ownerID string) bool
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for locations and the confirmation
// workflow.
type Handlers struct {
	store   LocationStore
	confirm ConfirmWorkflow
}

// New constructs a Handlers instance bound to the given services.
func New(store LocationStore, confirm ConfirmWorkflow) *Handlers {
	return &Handlers{store: store, confirm: confirm}
}

// owner resolves the request's owner identity. Requests without an owner id
// are rejected with 401 before any service call; the display name is optional
// and only used for notifications.
func owner(c *gin.Context) (id, name string, ok bool) {
	id, name = middleware.OwnerFrom(c)
	if id == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "X-Owner-ID header required")
		return "", "", false
	}
	return id, name, true
}

//
// DTOs
//

// ProposeLocationRequest is the JSON payload for staging a candidate.
type ProposeLocationRequest struct {
	// Name optionally labels the location; the note or a generated label is
	// used when empty.
	Name string `json:"name" example:"Mountain base"`
	// X/Y/Z are the block coordinates of the location.
	X int `json:"x" example:"120"`
	Y int `json:"y" example:"64"`
	Z int `json:"z" example:"-340"`
	// World the location belongs to.
	World string `json:"world" binding:"required" example:"overworld"`
	// Biome at the location.
	Biome string `json:"biome" binding:"required" example:"PLAINS"`
	// Note is free text carried into the notification.
	Note string `json:"note" example:"near the ruined portal"`
}

// RenameLocationRequest is the JSON payload for renaming a location.
type RenameLocationRequest struct {
	// Name is the new label (1–255 chars).
	Name string `json:"name" binding:"required,max=255" example:"Stronghold"`
}

// ConfirmLocationResponse reports both outcomes of a confirm: the persisted
// location and, independently, what happened to the notification.
type ConfirmLocationResponse struct {
	Location *domain.Location `json:"location"`
	// Notification is "sent", "disabled", or "failed".
	Notification string `json:"notification" example:"sent"`
	// NotificationError carries the dispatch failure cause, when failed.
	NotificationError string `json:"notification_error,omitempty"`
}

// CancelLocationResponse reports the result of a cancel.
type CancelLocationResponse struct {
	Cancelled bool `json:"cancelled"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListLocationsResponse wraps a page of locations and pagination info.
type ListLocationsResponse struct {
	Locations  []domain.Location `json:"locations"`
	Pagination Pagination        `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds the page and page_size query params.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

//
// Handlers
//

// ProposeLocation godoc
// @ID          proposeLocation
// @Summary     Stage a location candidate
// @Description Stores a pending candidate for the owner, replacing any earlier one. The candidate expires after the configured TTL unless confirmed.
// @Tags        Locations
// @Accept      json
// @Produce     json
//
// @Param       X-Owner-ID    header  string  true   "Owner ID"            example(uuid-123)
// @Param       X-Owner-Name  header  string  false  "Owner display name"  example(Olwen)
// @Param       body          body    handlers.ProposeLocationRequest  true  "Candidate payload"
//
// @Success     202  {object}  domain.PendingLocation
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing owner identity"
// @Router      /locations/propose [post]
func (h *Handlers) ProposeLocation(c *gin.Context) {
	ownerID, ownerName, okID := owner(c)
	if !okID {
		return
	}

	var req ProposeLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body: world and biome are required")
		return
	}

	cand := domain.PendingLocation{
		OwnerName: ownerName,
		Name:      req.Name,
		X:         req.X, Y: req.Y, Z: req.Z,
		World: strings.TrimSpace(req.World),
		Biome: strings.TrimSpace(req.Biome),
		Note:  strings.TrimSpace(req.Note),
	}
	stored, err := h.confirm.Propose(ownerID, cand)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	ok(c, http.StatusAccepted, stored)
}

// ConfirmLocation godoc
// @ID          confirmLocation
// @Summary     Confirm the pending candidate
// @Description Persists the owner's pending candidate and attempts one notification dispatch. The notification outcome is reported independently of the save.
// @Tags        Locations
// @Produce     json
//
// @Param       X-Owner-ID  header  string  true  "Owner ID"  example(uuid-123)
//
// @Success     201  {object}  handlers.ConfirmLocationResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Missing owner identity"
// @Failure     404  {object}  handlers.ErrorResponse  "Nothing pending"
// @Failure     500  {object}  handlers.ErrorResponse  "Save failed (candidate retained)"
// @Router      /locations/confirm [post]
func (h *Handlers) ConfirmLocation(c *gin.Context) {
	ownerID, _, okID := owner(c)
	if !okID {
		return
	}

	res, err := h.confirm.Confirm(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, services.ErrNoPendingLocation) {
			fail(c, http.StatusNotFound, ErrCodeNoPending, "no pending location to confirm")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		return
	}

	resp := ConfirmLocationResponse{
		Location:     res.Location,
		Notification: string(res.Dispatch),
	}
	if res.DispatchErr != nil {
		resp.NotificationError = res.DispatchErr.Error()
	}
	ok(c, http.StatusCreated, resp)
}

// CancelLocation godoc
// @ID          cancelLocation
// @Summary     Cancel the pending candidate
// @Description Discards the owner's pending candidate. Cancelling with nothing pending is a no-op and reports cancelled=false.
// @Tags        Locations
// @Produce     json
//
// @Param       X-Owner-ID  header  string  true  "Owner ID"  example(uuid-123)
//
// @Success     200  {object}  handlers.CancelLocationResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Missing owner identity"
// @Router      /locations/cancel [post]
func (h *Handlers) CancelLocation(c *gin.Context) {
	ownerID, _, okID := owner(c)
	if !okID {
		return
	}
	ok(c, http.StatusOK, CancelLocationResponse{Cancelled: h.confirm.Cancel(ownerID)})
}

// PendingLocation godoc
// @ID          pendingLocation
// @Summary     Inspect the pending candidate
// @Description Returns the owner's live pending candidate, if any.
// @Tags        Locations
// @Produce     json
//
// @Param       X-Owner-ID  header  string  true  "Owner ID"  example(uuid-123)
//
// @Success     200  {object}  domain.PendingLocation
// @Failure     401  {object}  handlers.ErrorResponse  "Missing owner identity"
// @Failure     404  {object}  handlers.ErrorResponse  "Nothing pending"
// @Router      /locations/pending [get]
func (h *Handlers) PendingLocation(c *gin.Context) {
	ownerID, _, okID := owner(c)
	if !okID {
		return
	}
	cand, live := h.confirm.Pending(ownerID)
	if !live {
		fail(c, http.StatusNotFound, ErrCodeNoPending, "no pending location")
		return
	}
	ok(c, http.StatusOK, cand)
}

// ListLocations godoc
// @ID          listLocations
// @Summary     List locations (paginated)
// @Description Returns a page of the owner's locations in creation order. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Locations
// @Produce     json
//
// @Param       X-Owner-ID     header  string  true   "Owner ID"                    example(uuid-123)
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false  "Page number"                 minimum(1) default(1)
// @Param       page_size      query   int     false  "Items per page"              minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListLocationsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     401  {object} handlers.ErrorResponse "Missing owner identity"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /locations [get]
func (h *Handlers) ListLocations(c *gin.Context) {
	ownerID, _, okID := owner(c)
	if !okID {
		return
	}
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, isSvc := h.store.(*services.LocationService); isSvc {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.LocationsStats(ctx, db, ownerID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"locations:%s:%d:%d"`, ownerID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.store.ListPage(ctx, ownerID, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := utils.TotalPages(total, pageSize)
	ok(c, http.StatusOK, ListLocationsResponse{
		Locations: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// RenameLocation godoc
// @ID          renameLocation
// @Summary     Rename a location
// @Description Updates the name of the location addressed by numeric id or exact current name.
// @Tags        Locations
// @Accept      json
// @Produce     json
//
// @Param       X-Owner-ID  header  string  true  "Owner ID"                example(uuid-123)
// @Param       key         path    string  true  "Location id or name"     example(3)
// @Param       body        body    handlers.RenameLocationRequest  true  "New name"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing owner identity"
// @Failure     404  {object} handlers.ErrorResponse "Location not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /locations/{key}/name [put]
func (h *Handlers) RenameLocation(c *gin.Context) {
	ownerID, _, okID := owner(c)
	if !okID {
		return
	}

	var req RenameLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required (1–255 chars)")
		return
	}

	key := services.ParseKey(c.Param("key"))
	if err := h.store.Rename(c.Request.Context(), ownerID, key, req.Name); err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "location not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// DeleteLocation godoc
// @ID          deleteLocation
// @Summary     Delete a location
// @Description Removes the location addressed by numeric id or exact name. The freed id is never reassigned.
// @Tags        Locations
// @Produce     json
//
// @Param       X-Owner-ID  header  string  true  "Owner ID"             example(uuid-123)
// @Param       key         path    string  true  "Location id or name"  example(3)
//
// @Success     204  {string} string "No Content"
// @Failure     401  {object} handlers.ErrorResponse "Missing owner identity"
// @Failure     404  {object} handlers.ErrorResponse "Location not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /locations/{key} [delete]
func (h *Handlers) DeleteLocation(c *gin.Context) {
	ownerID, _, okID := owner(c)
	if !okID {
		return
	}

	key := services.ParseKey(c.Param("key"))
	if err := h.store.Delete(c.Request.Context(), ownerID, key); err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "location not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
