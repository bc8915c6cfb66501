package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/fridayfut/fridayfut/internal/domain/checkin"
	"github.com/fridayfut/fridayfut/internal/domain/match"
	"github.com/fridayfut/fridayfut/internal/domain/rating"
	"github.com/fridayfut/fridayfut/internal/domain/roster"
	"github.com/fridayfut/fridayfut/internal/domain/settings"
	"github.com/fridayfut/fridayfut/internal/usecase"
)

type Handler struct {
	sessionService     *usecase.SessionService
	rosterService      *usecase.RosterService
	checkinService     *usecase.CheckinService
	matchService       *usecase.MatchService
	leaderboardService *usecase.LeaderboardService
	teamsheetService   *usecase.TeamsheetService
	importService      *usecase.ImportService
	adminService       *usecase.AdminService
	liveService        *usecase.LiveService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	sessionService *usecase.SessionService,
	rosterService *usecase.RosterService,
	checkinService *usecase.CheckinService,
	matchService *usecase.MatchService,
	leaderboardService *usecase.LeaderboardService,
	teamsheetService *usecase.TeamsheetService,
	importService *usecase.ImportService,
	adminService *usecase.AdminService,
	liveService *usecase.LiveService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		sessionService:     sessionService,
		rosterService:      rosterService,
		checkinService:     checkinService,
		matchService:       matchService,
		leaderboardService: leaderboardService,
		teamsheetService:   teamsheetService,
		importService:      importService,
		adminService:       adminService,
		liveService:        liveService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(body io.Reader, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type statsDTO struct {
	GamesPlayed  int     `json:"gamesPlayed"`
	Goals        int     `json:"goals"`
	Assists      int     `json:"assists"`
	Wins         float64 `json:"wins"`
	CleanSheets  int     `json:"cleanSheets"`
	GoalsFor     int     `json:"goalsFor"`
	GoalsAgainst int     `json:"goalsAgainst"`
	MOTMs        int     `json:"motms"`
}

type attributesDTO struct {
	Fitness  float64 `json:"fitness"`
	Control  float64 `json:"control"`
	Shooting float64 `json:"shooting"`
	Defense  float64 `json:"defense"`
}

type playerDTO struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Stats      statsDTO       `json:"stats"`
	Season     *statsDTO      `json:"season,omitempty"`
	Attributes *attributesDTO `json:"attributes,omitempty"`
	PhotoURL   string         `json:"photoUrl,omitempty"`
	CreatedAt  string         `json:"createdAt"`
}

type formDTO struct {
	WinStreak        int      `json:"winStreak"`
	LossStreak       int      `json:"lossStreak"`
	GoalStreak       int      `json:"goalStreak"`
	AssistStreak     int      `json:"assistStreak"`
	CleanSheetStreak int      `json:"cleanSheetStreak"`
	PlayedStreak     int      `json:"playedStreak"`
	Last5            []string `json:"last5"`
	Score            float64  `json:"score"`
}

type checkinDTO struct {
	ID        string `json:"id"`
	PlayerID  string `json:"playerId"`
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
}

type lineDTO struct {
	Side         string  `json:"side"`
	Goals        int     `json:"goals"`
	Assists      int     `json:"assists"`
	Win          float64 `json:"win"`
	GoalsFor     int     `json:"goalsFor"`
	GoalsAgainst int     `json:"goalsAgainst"`
	CleanSheet   bool    `json:"cleanSheet"`
}

type matchDTO struct {
	ID            string             `json:"id"`
	Date          string             `json:"date"`
	Lines         map[string]lineDTO `json:"lines"`
	MOTM          string             `json:"motm,omitempty"`
	BlueScore     int                `json:"blueScore"`
	WhiteScore    int                `json:"whiteScore"`
	OwnGoalsBlue  int                `json:"ownGoalsBlue"`
	OwnGoalsWhite int                `json:"ownGoalsWhite"`
	CreatedAt     string             `json:"createdAt"`
}

type publishedTeamsDTO struct {
	Blue        []string `json:"blue"`
	White       []string `json:"white"`
	PublishedAt string   `json:"publishedAt"`
}

func statsToDTO(s roster.Stats) statsDTO {
	return statsDTO(s)
}

func playerToDTO(p roster.Player) playerDTO {
	dto := playerDTO{
		ID:        p.ID,
		Name:      p.Name,
		Stats:     statsToDTO(p.Stats),
		PhotoURL:  p.PhotoURL,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.Season != nil {
		season := statsToDTO(*p.Season)
		dto.Season = &season
	}
	if p.Attributes != nil {
		attrs := attributesDTO(*p.Attributes)
		dto.Attributes = &attrs
	}

	return dto
}

func formToDTO(f rating.Form) formDTO {
	last5 := f.Last5
	if last5 == nil {
		last5 = []string{}
	}

	return formDTO{
		WinStreak:        f.WinStreak,
		LossStreak:       f.LossStreak,
		GoalStreak:       f.GoalStreak,
		AssistStreak:     f.AssistStreak,
		CleanSheetStreak: f.CleanSheetStreak,
		PlayedStreak:     f.PlayedStreak,
		Last5:            last5,
		Score:            f.Score,
	}
}

func checkinToDTO(c checkin.Checkin) checkinDTO {
	return checkinDTO{
		ID:        c.ID,
		PlayerID:  c.PlayerID,
		Name:      c.Name,
		Timestamp: c.Timestamp.UTC().Format(time.RFC3339),
	}
}

func checkinsToDTO(items []checkin.Checkin) []checkinDTO {
	out := make([]checkinDTO, 0, len(items))
	for _, c := range items {
		out = append(out, checkinToDTO(c))
	}

	return out
}

func matchToDTO(m match.Match) matchDTO {
	lines := make(map[string]lineDTO, len(m.Lines))
	for playerID, line := range m.Lines {
		lines[playerID] = lineDTO{
			Side:         string(line.Side),
			Goals:        line.Goals,
			Assists:      line.Assists,
			Win:          line.Win,
			GoalsFor:     line.GoalsFor,
			GoalsAgainst: line.GoalsAgainst,
			CleanSheet:   line.CleanSheet,
		}
	}

	return matchDTO{
		ID:            m.ID,
		Date:          m.Date.UTC().Format(time.RFC3339),
		Lines:         lines,
		MOTM:          m.MOTM,
		BlueScore:     m.BlueScore,
		WhiteScore:    m.WhiteScore,
		OwnGoalsBlue:  m.OwnGoalsBlue,
		OwnGoalsWhite: m.OwnGoalsWhite,
		CreatedAt:     m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func publishedTeamsToDTO(t settings.PublishedTeams) publishedTeamsDTO {
	return publishedTeamsDTO{
		Blue:        append([]string{}, t.Blue...),
		White:       append([]string{}, t.White...),
		PublishedAt: t.PublishedAt.UTC().Format(time.RFC3339),
	}
}
