package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

type generateTournamentInput struct {
	Players []string `json:"players"`
}

// GetHandler godoc
// @Summary Current tournament snapshot
// @Tags tournament
// @Produce json
// @Success 200 {object} models.Snapshot
// @Router /tournament [get]
func (h *TournamentHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, h.tournamentService.Snapshot(), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateHandler godoc
// @Summary Generate a bracket from player names
// @Tags tournament
// @Accept json
// @Produce json
// @Param input body generateTournamentInput true "Player names"
// @Success 201 {object} models.Snapshot
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 409 {object} map[string]string "A tournament is already running"
// @Failure 422 {object} map[string]string "Blank name or fewer than two players"
// @Security BearerAuth
// @Router /tournament [post]
func (h *TournamentHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var input generateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	snapshot, err := h.tournamentService.Generate(r.Context(), input.Players)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, snapshot, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// NextMatchHandler godoc
// @Summary Select the next match and hand it to the game engine
// @Tags tournament
// @Produce json
// @Success 200 {object} map[string]interface{} "current_match and snapshot"
// @Failure 409 {object} map[string]string "No tournament generated"
// @Security BearerAuth
// @Router /tournament/matches/next [post]
func (h *TournamentHandler) NextMatchHandler(w http.ResponseWriter, r *http.Request) {
	current, snapshot, err := h.tournamentService.SelectNext(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	env := jsonResponse{"snapshot": snapshot}
	if current != nil {
		env["current_match"] = current
	}
	if err := writeJSON(w, http.StatusOK, env, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResultHandler godoc
// @Summary Deliver a match result from the game engine
// @Tags tournament
// @Accept json
// @Produce json
// @Param result body models.MatchResult true "Match result"
// @Success 200 {object} map[string]interface{} "Result applied"
// @Success 202 {object} map[string]interface{} "Stale result dropped"
// @Failure 422 {object} map[string]string "Winner is not playing the current match"
// @Router /tournament/results [post]
func (h *TournamentHandler) ResultHandler(w http.ResponseWriter, r *http.Request) {
	var result models.MatchResult
	if err := readJSON(w, r, &result); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	applied, snapshot, err := h.tournamentService.ApplyResult(r.Context(), result)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusOK
	if !applied {
		status = http.StatusAccepted
	}
	if err := writeJSON(w, status, jsonResponse{"applied": applied, "snapshot": snapshot}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResetHandler godoc
// @Summary Discard the tournament and return to setup
// @Tags tournament
// @Produce json
// @Success 200 {object} models.Snapshot
// @Router /tournament [delete]
func (h *TournamentHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.tournamentService.Reset(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, snapshot, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
