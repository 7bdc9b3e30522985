// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-poll/logging"
	"github.com/danielhkuo/quickly-poll/middleware"
	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/store"
)

// PollStore is the subset of *store.Store the handlers need
type PollStore interface {
	Create(ctx context.Context, name string, minutes int, options []string) (*models.Poll, error)
	Get(ctx context.Context, name string) (*models.Poll, error)
	Vote(ctx context.Context, name, voter, option string) (*models.Poll, error)
	List(ctx context.Context) ([]*models.Poll, error)
}

type PollHandler struct {
	store PollStore
}

func NewPollHandler(s PollStore) *PollHandler {
	return &PollHandler{store: s}
}

// ListPolls handles GET /api/list
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.store.List(r.Context())
	if err != nil {
		storeError(w, "list", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListPollsResponse{Polls: polls})
}

// AddPoll handles POST /api/add
func (h *PollHandler) AddPoll(w http.ResponseWriter, r *http.Request) {
	var req models.AddPollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.TextError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	name, ok := stringParam(req.Name)
	if !ok {
		middleware.TextError(w, http.StatusBadRequest, "missing 'name' parameter")
		return
	}

	minutes, msg := minutesParam(req.Minutes)
	if msg != "" {
		middleware.TextError(w, http.StatusBadRequest, msg)
		return
	}

	options, msg := optionsParam(req.Options)
	if msg != "" {
		middleware.TextError(w, http.StatusBadRequest, msg)
		return
	}

	p, err := h.store.Create(r.Context(), name, minutes, options)
	if err != nil {
		storeError(w, "add", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollResponse{Poll: p})
}

// VoteInPoll handles POST /api/vote
func (h *PollHandler) VoteInPoll(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.TextError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	voter, ok := stringParam(req.Voter)
	if !ok || voter == "" {
		middleware.TextError(w, http.StatusBadRequest, "missing or invalid 'voter' parameter")
		return
	}

	name, ok := stringParam(req.Name)
	if !ok {
		middleware.TextError(w, http.StatusBadRequest, "missing or invalid 'name' parameter")
		return
	}

	// The store checks existence and end time before the vote itself, so a
	// non-string vote is reported only once those pass
	vote, voteOK := stringParam(req.Vote)

	p, err := h.store.Vote(r.Context(), name, voter, vote)
	if err != nil {
		if !voteOK && errors.Is(err, store.ErrInvalidInput) {
			middleware.TextError(w, http.StatusBadRequest,
				fmt.Sprintf("'vote' is not a string: %s", describe(req.Vote)))
			return
		}
		storeError(w, "vote", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollResponse{Poll: p})
}

// GetPoll handles POST /api/get
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	var req models.GetPollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.TextError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	name, ok := stringParam(req.Name)
	if !ok {
		middleware.TextError(w, http.StatusBadRequest, "missing or invalid 'name' parameter")
		return
	}

	p, err := h.store.Get(r.Context(), name)
	if err != nil {
		storeError(w, "get", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollResponse{Poll: p})
}

// storeError reports rejected requests as 400 with the store's message.
// Anything else is logged and hidden behind a 500.
func storeError(w http.ResponseWriter, op string, err error) {
	if store.IsRejection(err) {
		middleware.TextError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Error("poll store failed", "op", op, logging.Err(err))
	middleware.TextError(w, http.StatusInternalServerError, "internal error")
}
