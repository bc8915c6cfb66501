package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/usecase"
)

type tallyPayload struct {
	Side    string `json:"side" validate:"required,oneof=blue white"`
	Goals   int    `json:"goals" validate:"min=0"`
	Assists int    `json:"assists" validate:"min=0"`
}

type votePayload struct {
	PlayerID string `json:"playerId" validate:"required"`
	Votes    int    `json:"votes" validate:"min=1"`
}

type saveMatchRequest struct {
	Date          string                  `json:"date"`
	Tallies       map[string]tallyPayload `json:"tallies" validate:"required,min=1"`
	OwnGoalsBlue  int                     `json:"ownGoalsBlue" validate:"min=0"`
	OwnGoalsWhite int                     `json:"ownGoalsWhite" validate:"min=0"`
	Votes         []votePayload           `json:"votes" validate:"dive"`
}

func (h *Handler) saveMatchInput(r *http.Request) (usecase.SaveMatchInput, error) {
	ctx := r.Context()

	var req saveMatchRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		return usecase.SaveMatchInput{}, err
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return usecase.SaveMatchInput{}, err
	}
	for _, tally := range req.Tallies {
		if err := h.validateRequest(ctx, tally); err != nil {
			return usecase.SaveMatchInput{}, err
		}
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return usecase.SaveMatchInput{}, fmt.Errorf("%w: date must be RFC 3339: %v", usecase.ErrInvalidInput, err)
		}
		date = parsed
	}

	tallies := make(map[string]match.Tally, len(req.Tallies))
	for playerID, tally := range req.Tallies {
		tallies[playerID] = match.Tally{
			Side:    match.Side(tally.Side),
			Goals:   tally.Goals,
			Assists: tally.Assists,
		}
	}

	votes := make([]match.VoteCount, 0, len(req.Votes))
	for _, vote := range req.Votes {
		votes = append(votes, match.VoteCount{PlayerID: vote.PlayerID, Votes: vote.Votes})
	}

	return usecase.SaveMatchInput{
		Date:          date,
		Tallies:       tallies,
		OwnGoalsBlue:  req.OwnGoalsBlue,
		OwnGoalsWhite: req.OwnGoalsWhite,
		Votes:         votes,
	}, nil
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	matches, err := h.matchService.ListMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	m, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) SaveMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMatch")
	defer span.End()

	input, err := h.saveMatchInput(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchService.SaveMatch(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "save match failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(m))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	input, err := h.saveMatchInput(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchService.UpdateMatch(ctx, matchID, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	if err := h.matchService.DeleteMatch(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
