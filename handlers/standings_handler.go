package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-system/services"
)

type StandingsHandler struct {
	tournamentService services.TournamentService
	archiveService    services.ArchiveService
}

func NewStandingsHandler(ts services.TournamentService, as services.ArchiveService) *StandingsHandler {
	return &StandingsHandler{
		tournamentService: ts,
		archiveService:    as,
	}
}

// PlayerStandings godoc
// @Summary Турнирная таблица
// @Tags standings
// @Description Игроки по убыванию побед, при равенстве по имени.
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string "Хранилище недоступно"
// @Router /standings [get]
func (h *StandingsHandler) PlayerStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.tournamentService.PlayerStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SwissPairings godoc
// @Summary Пары следующего раунда
// @Tags standings
// @Description Соседние по таблице игроки играют друг с другом.
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string "Нечётное число игроков"
// @Router /pairings [get]
func (h *StandingsHandler) SwissPairings(w http.ResponseWriter, r *http.Request) {
	pairings, err := h.tournamentService.SwissPairings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pairings": pairings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CurrentRound godoc
// @Summary Текущий раунд
// @Tags standings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /rounds/current [get]
func (h *StandingsHandler) CurrentRound(w http.ResponseWriter, r *http.Request) {
	status, err := h.tournamentService.CurrentRound(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ArchiveStandings godoc
// @Summary Выгрузить таблицу в хранилище
// @Tags standings
// @Description Сохраняет текущую таблицу в JSON и CSV в объектном хранилище.
// @Produce json
// @Success 201 {object} map[string]interface{} "Архив создан"
// @Failure 501 {object} map[string]string "Хранилище не настроено"
// @Router /standings/archive [post]
func (h *StandingsHandler) ArchiveStandings(w http.ResponseWriter, r *http.Request) {
	archive, err := h.archiveService.ArchiveStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"archive": archive}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
