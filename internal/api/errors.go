package api

import (
	"errors"
	"net/http"

	"github.com/eugenenazirov/summit-pack/internal/condition"
	"github.com/eugenenazirov/summit-pack/internal/grid"
	"github.com/eugenenazirov/summit-pack/internal/session"
	"github.com/eugenenazirov/summit-pack/internal/storage"
)

// writeDomainError maps sentinel errors from the game packages to HTTP
// responses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "Session not found", err.Error(), "Start a new session with POST /api/sessions")
	case errors.Is(err, grid.ErrUnknownItem), errors.Is(err, grid.ErrUnknownInstance):
		writeError(w, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, grid.ErrOutOfBounds):
		writeError(w, http.StatusConflict, "Cannot place item", err.Error(), "Choose a position inside the backpack")
	case errors.Is(err, grid.ErrCollision):
		writeError(w, http.StatusConflict, "Cannot place item", err.Error(), "Move or remove the overlapping item first")
	case errors.Is(err, grid.ErrPressed):
		writeError(w, http.StatusConflict, "Cannot rotate item", err.Error(), "Move the item to release compression before rotating")
	case errors.Is(err, grid.ErrNoRestingRow):
		writeError(w, http.StatusConflict, "Cannot compress", err.Error())
	case errors.Is(err, session.ErrNoCheckpoint):
		writeError(w, http.StatusConflict, "Nothing to restore", err.Error())
	case errors.Is(err, grid.ErrInvalidCapacity):
		writeError(w, http.StatusBadRequest, "Invalid capacity", err.Error())
	case errors.Is(err, condition.ErrIncompleteSelection), errors.Is(err, condition.ErrInvalidValue):
		writeError(w, http.StatusBadRequest, "Invalid condition", err.Error())
	case errors.Is(err, storage.ErrStorageFull):
		writeError(w, http.StatusServiceUnavailable, "Server busy", err.Error(), "Retry once other sessions have finished")
	default:
		writeInternalError(w, err)
	}
}
