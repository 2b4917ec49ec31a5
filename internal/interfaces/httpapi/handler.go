package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Ndwalker8/NFL-100/internal/domain/scoring"
	"github.com/Ndwalker8/NFL-100/internal/platform/logging"
	"github.com/Ndwalker8/NFL-100/internal/usecase"
)

type Handler struct {
	periodService   *usecase.PeriodService
	poolService     *usecase.PoolService
	snapshotService *usecase.SnapshotService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	periodService *usecase.PeriodService,
	poolService *usecase.PoolService,
	snapshotService *usecase.SnapshotService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		periodService:   periodService,
		poolService:     poolService,
		snapshotService: snapshotService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetCurrentPeriod returns the calendar-derived period for both sports.
// The response is pure calendar math, so it carries long-lived cache
// headers and an ETag keyed on the football season-week pair.
func (h *Handler) GetCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentPeriod")
	defer span.End()

	nfl := h.periodService.CurrentFootball(ctx)
	nba := h.periodService.CurrentBasketball(ctx)

	w.Header().Set("Cache-Control", "public, s-maxage=3600, stale-while-revalidate=86400")
	etag := fmt.Sprintf("%q", nfl.String())
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, periodDTO{
		NFL: footballPeriodDTO{Season: nfl.Season, Week: nfl.Week},
		NBA: basketballPeriodDTO{Date: nba.Date},
	})
}

func (h *Handler) ListFootballPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFootballPlayers")
	defer span.End()

	season, week, err := h.footballPeriodParams(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	pool, err := h.poolService.GetFootballPool(ctx, season, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list football players failed", "season", season, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	players := make([]playerDTO, 0, len(pool.Players))
	for _, p := range pool.Players {
		players = append(players, playerDTO{
			ID:       p.ID,
			Name:     p.Name,
			Team:     p.Team,
			Position: string(p.Position),
			Headshot: p.Headshot,
			Jersey:   p.Jersey,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, footballPoolDTO{
		SeasonUsed: pool.SeasonUsed,
		Week:       pool.Week,
		Players:    players,
		Warnings:   nonNil(pool.Warnings),
	})
}

func (h *Handler) GetFootballStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFootballStats")
	defer span.End()

	season, week, err := h.footballPeriodParams(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	current := h.periodService.CurrentFootball(ctx)
	if week == 0 {
		week = current.Week
	}

	mode, err := scoring.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	snapshot, err := h.snapshotService.GetFootballSnapshot(ctx, season, week, mode)
	if err != nil {
		h.logger.WarnContext(ctx, "football snapshot failed", "season", season, "week", week, "mode", mode, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, footballStatsDTO{
		Season:     snapshot.Season,
		SeasonUsed: snapshot.SeasonUsed,
		Week:       snapshot.Week,
		Mode:       string(snapshot.Mode),
		Entries:    footballEntriesToDTO(ctx, snapshot.Entries),
		Warnings:   nonNil(snapshot.Warnings),
	})
}

// GetActiveFootballStats resolves the most recent football period that has
// data and returns its snapshot. Unlike GetFootballStats this never serves
// an empty calendar-current week; it probes backward until rows exist.
func (h *Handler) GetActiveFootballStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveFootballStats")
	defer span.End()

	mode, err := scoring.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	active, err := h.periodService.ActiveFootball(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "active football period probe failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.snapshotService.GetFootballSnapshot(ctx, active.Season, active.Week, mode)
	if err != nil {
		h.logger.WarnContext(ctx, "active football snapshot failed", "season", active.Season, "week", active.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, activeFootballDTO{
		Season:   active.Season,
		Week:     active.Week,
		Mode:     string(snapshot.Mode),
		Entries:  footballEntriesToDTO(ctx, snapshot.Entries),
		Warnings: nonNil(snapshot.Warnings),
	})
}

func (h *Handler) ListBasketballPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBasketballPlayers")
	defer span.End()

	date := h.slateDate(ctx, r)
	if err := h.validateRequest(ctx, slateRequest{Date: date}); err != nil {
		writeError(ctx, w, err)
		return
	}

	pool, err := h.poolService.GetBasketballPool(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "list basketball players failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	players := make([]playerDTO, 0, len(pool.Players))
	for _, p := range pool.Players {
		players = append(players, playerDTO{
			ID:       p.ID,
			Name:     p.Name,
			Team:     p.Team,
			Position: string(p.Position),
			Headshot: p.Headshot,
			Jersey:   p.Jersey,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, basketballPoolDTO{
		Date:     pool.Date,
		Players:  players,
		Warnings: nonNil(pool.Warnings),
	})
}

func (h *Handler) GetBasketballStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBasketballStats")
	defer span.End()

	date := h.slateDate(ctx, r)
	if err := h.validateRequest(ctx, slateRequest{Date: date}); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.snapshotService.GetBasketballSnapshot(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "basketball snapshot failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, basketballStatsDTO{
		Date:     snapshot.Date,
		Entries:  basketballEntriesToDTO(ctx, snapshot.Entries),
		Warnings: nonNil(snapshot.Warnings),
	})
}

// footballPeriodParams reads the season and week query params, defaulting
// an absent season to the calendar-current one. Week 0 means "whole
// season" for pool listings; stats handlers substitute the current week.
func (h *Handler) footballPeriodParams(ctx context.Context, r *http.Request) (int, int, error) {
	season, ok, err := queryInt(r, "season")
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		season = h.periodService.CurrentFootball(ctx).Season
	}

	week, _, err := queryInt(r, "week")
	if err != nil {
		return 0, 0, err
	}

	if err := h.validateRequest(ctx, footballPeriodRequest{Season: season, Week: week}); err != nil {
		return 0, 0, err
	}
	return season, week, nil
}

func (h *Handler) slateDate(ctx context.Context, r *http.Request) string {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = h.periodService.CurrentBasketball(ctx).Date
	}
	return date
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func queryInt(r *http.Request, name string) (int, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w: query param %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, true, nil
}

type footballPeriodRequest struct {
	Season int `validate:"required,min=1999,max=2100"`
	Week   int `validate:"omitempty,min=1,max=22"`
}

type slateRequest struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

type periodDTO struct {
	NFL footballPeriodDTO   `json:"nfl"`
	NBA basketballPeriodDTO `json:"nba"`
}

type footballPeriodDTO struct {
	Season int `json:"season"`
	Week   int `json:"week"`
}

type basketballPeriodDTO struct {
	Date string `json:"date"`
}

type playerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Headshot string `json:"headshot,omitempty"`
	Jersey   string `json:"jersey,omitempty"`
}

type footballLineDTO struct {
	PassYds       float64 `json:"passYds"`
	PassTD        float64 `json:"passTd"`
	Interceptions float64 `json:"interceptions"`
	RushYds       float64 `json:"rushYds"`
	RushTD        float64 `json:"rushTd"`
	Receptions    float64 `json:"receptions"`
	RecYds        float64 `json:"recYds"`
	RecTD         float64 `json:"recTd"`
	FumblesLost   float64 `json:"fumblesLost"`
}

type basketballLineDTO struct {
	Points     float64 `json:"points"`
	Rebounds   float64 `json:"rebounds"`
	Assists    float64 `json:"assists"`
	Steals     float64 `json:"steals"`
	Blocks     float64 `json:"blocks"`
	Turnovers  float64 `json:"turnovers"`
	ThreesMade float64 `json:"threesMade"`
	Minutes    float64 `json:"minutes"`
}

type footballEntryDTO struct {
	PlayerID string          `json:"playerId"`
	Name     string          `json:"name"`
	Team     string          `json:"team"`
	Position string          `json:"position,omitempty"`
	Points   float64         `json:"points"`
	Stats    footballLineDTO `json:"stats"`
}

type basketballEntryDTO struct {
	PlayerID string            `json:"playerId"`
	Name     string            `json:"name"`
	Team     string            `json:"team"`
	Points   float64           `json:"points"`
	Stats    basketballLineDTO `json:"stats"`
}

type footballPoolDTO struct {
	SeasonUsed int         `json:"seasonUsed"`
	Week       int         `json:"week,omitempty"`
	Players    []playerDTO `json:"players"`
	Warnings   []string    `json:"warnings"`
}

type basketballPoolDTO struct {
	Date     string      `json:"date"`
	Players  []playerDTO `json:"players"`
	Warnings []string    `json:"warnings"`
}

type footballStatsDTO struct {
	Season     int                `json:"season"`
	SeasonUsed int                `json:"seasonUsed"`
	Week       int                `json:"week"`
	Mode       string             `json:"mode"`
	Entries    []footballEntryDTO `json:"entries"`
	Warnings   []string           `json:"warnings"`
}

type activeFootballDTO struct {
	Season   int                `json:"season"`
	Week     int                `json:"week"`
	Mode     string             `json:"mode"`
	Entries  []footballEntryDTO `json:"entries"`
	Warnings []string           `json:"warnings"`
}

type basketballStatsDTO struct {
	Date     string               `json:"date"`
	Entries  []basketballEntryDTO `json:"entries"`
	Warnings []string             `json:"warnings"`
}

func footballEntriesToDTO(ctx context.Context, entries []usecase.ScoreEntry) []footballEntryDTO {
	ctx, span := startSpan(ctx, "httpapi.footballEntriesToDTO")
	defer span.End()

	items := make([]footballEntryDTO, 0, len(entries))
	for _, e := range entries {
		var line footballLineDTO
		if e.Football != nil {
			line = footballLineDTO{
				PassYds:       e.Football.PassYds,
				PassTD:        e.Football.PassTD,
				Interceptions: e.Football.Interceptions,
				RushYds:       e.Football.RushYds,
				RushTD:        e.Football.RushTD,
				Receptions:    e.Football.Receptions,
				RecYds:        e.Football.RecYds,
				RecTD:         e.Football.RecTD,
				FumblesLost:   e.Football.FumblesLost,
			}
		}
		items = append(items, footballEntryDTO{
			PlayerID: e.PlayerID,
			Name:     e.Name,
			Team:     e.Team,
			Position: string(e.Position),
			Points:   e.Points,
			Stats:    line,
		})
	}
	return items
}

func basketballEntriesToDTO(ctx context.Context, entries []usecase.ScoreEntry) []basketballEntryDTO {
	ctx, span := startSpan(ctx, "httpapi.basketballEntriesToDTO")
	defer span.End()

	items := make([]basketballEntryDTO, 0, len(entries))
	for _, e := range entries {
		var line basketballLineDTO
		if e.Basketball != nil {
			line = basketballLineDTO{
				Points:     e.Basketball.Points,
				Rebounds:   e.Basketball.Rebounds,
				Assists:    e.Basketball.Assists,
				Steals:     e.Basketball.Steals,
				Blocks:     e.Basketball.Blocks,
				Turnovers:  e.Basketball.Turnovers,
				ThreesMade: e.Basketball.ThreesMade,
				Minutes:    e.Basketball.Minutes,
			}
		}
		items = append(items, basketballEntryDTO{
			PlayerID: e.PlayerID,
			Name:     e.Name,
			Team:     e.Team,
			Points:   e.Points,
			Stats:    line,
		})
	}
	return items
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
