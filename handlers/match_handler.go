package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Dosada05/swiss-system/services"
)

type MatchHandler struct {
	tournamentService services.TournamentService
}

func NewMatchHandler(ts services.TournamentService) *MatchHandler {
	return &MatchHandler{tournamentService: ts}
}

type reportMatchInput struct {
	WinnerID int `json:"winner_id"`
	LoserID  int `json:"loser_id"`
}

// ReportMatch godoc
// @Summary Сообщить результат матча
// @Tags matches
// @Description Записывает победителя и проигравшего. Раунд назначается автоматически.
// @Accept json
// @Produce json
// @Param body body reportMatchInput true "ID победителя и проигравшего"
// @Success 201 {object} map[string]interface{} "Матч записан"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 404 {object} map[string]string "Игрок не найден"
// @Failure 409 {object} map[string]string "Конфликт параллельной записи"
// @Failure 422 {object} map[string]string "Не указаны игроки"
// @Router /matches [post]
func (h *MatchHandler) ReportMatch(w http.ResponseWriter, r *http.Request) {
	var input reportMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	problems := make(map[string]string)
	if input.WinnerID == 0 {
		problems["winner_id"] = "must be provided"
	}
	if input.LoserID == 0 {
		problems["loser_id"] = "must be provided"
	}
	if len(problems) > 0 {
		failedValidationResponse(w, r, problems)
		return
	}

	match, err := h.tournamentService.ReportMatch(r.Context(), input.WinnerID, input.LoserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatches godoc
// @Summary Журнал матчей
// @Tags matches
// @Produce json
// @Param round query int false "Только матчи указанного раунда"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Некорректный раунд"
// @Router /matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	var round *int
	if raw := r.URL.Query().Get("round"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequestResponse(w, r, fmt.Errorf("invalid round format: %q", raw))
			return
		}
		round = &n
	}

	matches, err := h.tournamentService.ListMatches(r.Context(), round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatches godoc
// @Summary Удалить все матчи
// @Tags matches
// @Description Очищает журнал матчей, игроки остаются.
// @Success 204 "Матчи удалены"
// @Router /matches [delete]
func (h *MatchHandler) DeleteMatches(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.DeleteMatches(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
