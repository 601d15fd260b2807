package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/eugenenazirov/summit-pack/internal/condition"
	"github.com/eugenenazirov/summit-pack/internal/grid"
	"github.com/eugenenazirov/summit-pack/internal/session"
)

type createSessionRequest struct {
	Capacity int `json:"capacity"`
}

type capacityRequest struct {
	Capacity int `json:"capacity"`
}

type placeRequest struct {
	ItemID string `json:"itemId"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	// Drop treats Y as the row the item was dropped on rather than its top row.
	Drop bool `json:"drop"`
}

type moveRequest struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	Drop bool `json:"drop"`
}

type sessionResponse struct {
	session.State
	InstanceID  string               `json:"instanceId,omitempty"`
	Rotation    grid.RotateOutcome   `json:"rotation,omitempty"`
	Compression *grid.CompressReport `json:"compression,omitempty"`
	Removed     *bool                `json:"removed,omitempty"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	sess, err := h.newSession(req.Capacity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.storage.Add(sess); err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("session created",
		zap.String("session_id", sess.ID),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)
	writeJSON(w, http.StatusCreated, sessionResponse{State: sess.State()})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		return sessionResponse{State: s.State()}, nil
	})
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Delete(r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRerollCondition(w http.ResponseWriter, r *http.Request) {
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		if _, err := s.Reroll(); err != nil {
			return nil, err
		}
		return sessionResponse{State: s.State()}, nil
	})
}

func (h *Handler) handlePutCondition(w http.ResponseWriter, r *http.Request) {
	var sel condition.Selection
	if err := decodeJSON(r, &sel, true); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		if _, err := s.ApplyCustom(sel); err != nil {
			return nil, err
		}
		return sessionResponse{State: s.State()}, nil
	})
}

func (h *Handler) handlePutCapacity(w http.ResponseWriter, r *http.Request) {
	var req capacityRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		if err := s.SetCapacity(req.Capacity); err != nil {
			return nil, err
		}
		return sessionResponse{State: s.State()}, nil
	})
}

func (h *Handler) handlePlaceItem(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "itemId is required")
		return
	}
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		place := s.Grid().Place
		if req.Drop {
			place = s.Grid().PlaceAtDrop
		}
		id, err := place(req.ItemID, req.X, req.Y)
		if err != nil {
			return nil, err
		}
		return sessionResponse{State: s.State(), InstanceID: id}, nil
	})
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	instanceID := r.PathValue("instanceId")
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		removed := s.Grid().Remove(instanceID)
		return sessionResponse{State: s.State(), Removed: &removed}, nil
	})
}

func (h *Handler) handleMoveItem(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	instanceID := r.PathValue("instanceId")
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		move := s.Grid().Move
		if req.Drop {
			move = s.Grid().MoveToDrop
		}
		if err := move(instanceID, req.X, req.Y); err != nil {
			return nil, err
		}
		return sessionResponse{State: s.State(), InstanceID: instanceID}, nil
	})
}

func (h *Handler) handleRotateItem(w http.ResponseWriter, r *http.Request) {
	instanceID := r.PathValue("instanceId")
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		outcome, err := s.Grid().Rotate(instanceID)
		if err != nil {
			return nil, err
		}
		return sessionResponse{State: s.State(), InstanceID: instanceID, Rotation: outcome}, nil
	})
}

func (h *Handler) handleCompress(w http.ResponseWriter, r *http.Request) {
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		report, err := s.Grid().CompressAll()
		if err != nil {
			return nil, err
		}
		return sessionResponse{State: s.State(), Compression: &report}, nil
	})
}

func (h *Handler) handleResetGrid(w http.ResponseWriter, r *http.Request) {
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		s.Reset()
		return sessionResponse{State: s.State()}, nil
	})
}

func (h *Handler) handleChecklist(w http.ResponseWriter, r *http.Request) {
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		return s.Checklist(), nil
	})
}

func (h *Handler) handleSaveCheckpoint(w http.ResponseWriter, r *http.Request) {
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		s.SaveCheckpoint()
		return sessionResponse{State: s.State()}, nil
	})
}

func (h *Handler) handleRestoreCheckpoint(w http.ResponseWriter, r *http.Request) {
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		if err := s.RestoreCheckpoint(); err != nil {
			return nil, err
		}
		return sessionResponse{State: s.State()}, nil
	})
}

func (h *Handler) handleFinish(w http.ResponseWriter, r *http.Request) {
	h.respondWith(w, r, func(s *session.Session) (any, error) {
		return s.Finish()
	})
}

// respondWith runs fn against the session named in the path and writes its
// result, or the mapped error, as JSON.
func (h *Handler) respondWith(w http.ResponseWriter, r *http.Request, fn func(*session.Session) (any, error)) {
	var payload any
	err := h.storage.With(r.PathValue("id"), func(s *session.Session) error {
		var err error
		payload, err = fn(s)
		return err
	})
	if err != nil {
		h.logger.Debug("session request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestIDFromContext(r.Context())),
			zap.Error(err),
		)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}
