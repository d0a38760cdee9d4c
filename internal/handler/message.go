package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"msgboard/internal/model"
	"msgboard/internal/store"
)

// GetMessages handles GET /messages
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	msgList, err := h.Store.ListAll(r.Context())
	if err != nil {
		log.Printf("[GET /messages] ❌ Database error: %v", err)
		writeError(w, http.StatusInternalServerError, errDatabase)
		return
	}

	writeJSON(w, http.StatusOK, msgList)
}

// CreateMessage handles POST /messages
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if err := decodeRequest(w, r, &req); err != nil {
		log.Printf("[POST /messages] ❌ Bad Request: %v", err)
		writeError(w, http.StatusBadRequest, errInvalidRequest)
		return
	}

	msg, err := h.Store.Create(r.Context(), *req.Body, *req.Username)
	if err != nil {
		log.Printf("[POST /messages] ❌ Database error: %v", err)
		writeError(w, http.StatusInternalServerError, errDatabase)
		return
	}

	log.Printf("[POST /messages] ✅ Created message: ID=%d, Username=%q", msg.ID, msg.Username)
	writeJSON(w, http.StatusCreated, msg)
}

type messageKey struct{}

// messageFrom returns the message loaded by withMessage.
func messageFrom(ctx context.Context) model.Message {
	msg, _ := ctx.Value(messageKey{}).(model.Message)
	return msg
}

// withMessage loads /messages/{id} before next runs. A missing message is a
// 404 no matter what the request body contains.
func (h *Handler) withMessage(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := mux.Vars(r)["id"]

		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			// Digits only, so this is an overflow: no such row can exist.
			log.Printf("[%s /messages/%s] ❌ Not Found", r.Method, rawID)
			writeError(w, http.StatusNotFound, errMessageNotFound)
			return
		}

		msg, err := h.Store.GetByID(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("[%s /messages/%d] ❌ Not Found", r.Method, id)
			writeError(w, http.StatusNotFound, errMessageNotFound)
			return
		}
		if err != nil {
			log.Printf("[%s /messages/%d] ❌ Database error: %v", r.Method, id, err)
			writeError(w, http.StatusInternalServerError, errDatabase)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), messageKey{}, msg)))
	}
}

// GetMessage handles GET /messages/{id}
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageFrom(r.Context()))
}

// UpdateMessage handles PATCH /messages/{id}
func (h *Handler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	msg := messageFrom(r.Context())

	var req updateMessageRequest
	if err := decodeRequest(w, r, &req); err != nil {
		log.Printf("[PATCH /messages/%d] ❌ Bad Request: %v", msg.ID, err)
		writeError(w, http.StatusBadRequest, errInvalidRequest)
		return
	}

	updated, err := h.Store.Update(r.Context(), msg.ID, *req.Body)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted between the lookup and the update.
		writeError(w, http.StatusNotFound, errMessageNotFound)
		return
	}
	if err != nil {
		log.Printf("[PATCH /messages/%d] ❌ Database error: %v", msg.ID, err)
		writeError(w, http.StatusInternalServerError, errDatabase)
		return
	}

	log.Printf("[PATCH /messages/%d] ✅ Updated", msg.ID)
	writeJSON(w, http.StatusOK, updated)
}

// DeleteMessage handles DELETE /messages/{id}
//
// The 204 response carries a JSON confirmation body. net/http servers drop
// bodies on 204, so only in-process callers such as httptest see it.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	msg := messageFrom(r.Context())

	err := h.Store.Delete(r.Context(), msg.ID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, errMessageNotFound)
		return
	}
	if err != nil {
		log.Printf("[DELETE /messages/%d] ❌ Database error: %v", msg.ID, err)
		writeError(w, http.StatusInternalServerError, errDatabase)
		return
	}

	log.Printf("[DELETE /messages/%d] ✅ Deleted successfully", msg.ID)
	writeJSON(w, http.StatusNoContent, map[string]string{"message": msgDeleted})
}
