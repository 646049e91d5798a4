package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fieldsim/gridiron/internal/cache"
	"github.com/fieldsim/gridiron/internal/engine"
	"github.com/fieldsim/gridiron/internal/models"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// SeasonHandler exposes the season rating engine over HTTP. The engine is
// single-writer by contract, so every operation runs under the handler's
// mutex.
type SeasonHandler struct {
	mu     sync.Mutex
	engine *engine.Engine
	cache  *cache.QueryCache // nil when Redis is disabled
	log    *logrus.Logger
}

// NewSeasonHandler creates the season handler. cache may be nil.
func NewSeasonHandler(eng *engine.Engine, qc *cache.QueryCache, log *logrus.Logger) *SeasonHandler {
	return &SeasonHandler{
		engine: eng,
		cache:  qc,
		log:    log,
	}
}

// RegisterPlayerRequest is the body for player registration.
type RegisterPlayerRequest struct {
	Name          string         `json:"name" binding:"required"`
	Position      string         `json:"position" binding:"required"`
	Team          string         `json:"team" binding:"required"`
	OverallRating int            `json:"overall_rating" binding:"required"`
	Skills        map[string]int `json:"skills" binding:"required"`
	Traits        []string       `json:"traits"`
}

// RegisterPlayer handles POST /api/v1/players.
func (h *SeasonHandler) RegisterPlayer(c *gin.Context) {
	var req RegisterPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	skills := make(map[models.SkillCategory]int, len(req.Skills))
	for raw, value := range req.Skills {
		skill, err := models.ParseSkillCategory(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "unknown_skill"})
			return
		}
		skills[skill] = value
	}

	profile := models.PlayerProfile{
		Name:          req.Name,
		Position:      models.Position(req.Position),
		OverallRating: req.OverallRating,
		Skills:        skills,
		Traits:        req.Traits,
	}

	h.mu.Lock()
	seasonProfile, err := h.engine.AddPlayer(profile, req.Team)
	h.mu.Unlock()
	if err != nil {
		if errors.Is(err, engine.ErrDuplicatePlayer) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "duplicate_player"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"player_key":       engine.PlayerKey(req.Name, req.Team),
		"starting_overall": seasonProfile.StartingOverall(),
	})
}

// RecordGameRequest is the body for recording one game's stats.
type RecordGameRequest struct {
	GameID   string             `json:"game_id"`
	Week     int                `json:"week" binding:"required"`
	Opponent string             `json:"opponent" binding:"required"`
	Stats    map[string]float64 `json:"stats" binding:"required"`
	Grade    float64            `json:"grade"`
	KeyPlays []string           `json:"key_plays"`
}

// RecordGame handles POST /api/v1/players/:key/games.
func (h *SeasonHandler) RecordGame(c *gin.Context) {
	playerKey := c.Param("key")

	var req RecordGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	stats := make(map[models.StatCategory]float64, len(req.Stats))
	for raw, value := range req.Stats {
		category, err := models.ParseStatCategory(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "unknown_stat"})
			return
		}
		stats[category] = value
	}

	if req.GameID == "" {
		req.GameID = uuid.New().String()
	}

	game := models.PlayerGameStats{
		GameID:   req.GameID,
		Week:     req.Week,
		Opponent: req.Opponent,
		Stats:    stats,
		Grade:    req.Grade,
		KeyPlays: req.KeyPlays,
	}

	h.mu.Lock()
	err := h.engine.RecordGameStats(playerKey, game)
	h.mu.Unlock()
	if err != nil {
		if errors.Is(err, engine.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "player_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	if h.cache != nil {
		if err := h.cache.InvalidatePlayer(c.Request.Context(), playerKey); err != nil {
			h.log.WithError(err).WithField("player_key", playerKey).Warn("Failed to invalidate query cache")
		}
	}

	c.JSON(http.StatusOK, gin.H{"game_id": req.GameID, "player_key": playerKey})
}

// GetSummary handles GET /api/v1/players/:key/summary.
func (h *SeasonHandler) GetSummary(c *gin.Context) {
	playerKey := c.Param("key")

	if h.cache != nil {
		if cached, err := h.cache.GetSummary(c.Request.Context(), playerKey); err == nil && cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	h.mu.Lock()
	summary, err := h.engine.GetPlayerRatingSummary(playerKey)
	h.mu.Unlock()
	if err != nil {
		if errors.Is(err, engine.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "player_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	if h.cache != nil {
		if err := h.cache.SetSummary(c.Request.Context(), playerKey, summary); err != nil {
			h.log.WithError(err).Warn("Failed to cache rating summary")
		}
	}

	c.JSON(http.StatusOK, summary)
}

// GetRatings handles GET /api/v1/players/:key/ratings.
func (h *SeasonHandler) GetRatings(c *gin.Context) {
	playerKey := c.Param("key")

	h.mu.Lock()
	ratings, err := h.engine.CurrentRatings(playerKey)
	h.mu.Unlock()
	if err != nil {
		if errors.Is(err, engine.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "player_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"player_key": playerKey, "current_ratings": ratings})
}

// GetLeaders handles GET /api/v1/leaders?stat=pass_yards&min_games=8.
func (h *SeasonHandler) GetLeaders(c *gin.Context) {
	category, err := models.ParseStatCategory(c.Query("stat"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "unknown_stat"})
		return
	}

	minGames := 0
	if raw := c.Query("min_games"); raw != "" {
		minGames, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "min_games must be an integer"})
			return
		}
	}

	if h.cache != nil {
		if cached, err := h.cache.GetLeaders(c.Request.Context(), category, minGames); err == nil && cached != nil {
			c.JSON(http.StatusOK, gin.H{"stat": category, "min_games": minGames, "leaders": cached})
			return
		}
	}

	h.mu.Lock()
	leaders := h.engine.GetLeagueLeaders(category, minGames)
	h.mu.Unlock()

	if h.cache != nil {
		if err := h.cache.SetLeaders(c.Request.Context(), category, minGames, leaders); err != nil {
			h.log.WithError(err).Warn("Failed to cache league leaders")
		}
	}

	c.JSON(http.StatusOK, gin.H{"stat": category, "min_games": minGames, "leaders": leaders})
}

// GetMovers handles GET /api/v1/movers/:direction (risers or fallers).
func (h *SeasonHandler) GetMovers(c *gin.Context) {
	direction := c.Param("direction")

	h.mu.Lock()
	var movers []engine.MoverEntry
	switch direction {
	case "risers":
		movers = h.engine.GetBiggestRisers()
	case "fallers":
		movers = h.engine.GetBiggestFallers()
	}
	h.mu.Unlock()

	if movers == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "direction must be risers or fallers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"direction": direction, "movers": movers})
}

// SeasonFileRequest is the body for export/import operations.
type SeasonFileRequest struct {
	Path string `json:"path" binding:"required"`
}

// ExportSeason handles POST /api/v1/season/export.
func (h *SeasonHandler) ExportSeason(c *gin.Context) {
	var req SeasonFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.mu.Lock()
	err := h.engine.ExportSeasonData(req.Path)
	h.mu.Unlock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": req.Path})
}

// ImportSeason handles POST /api/v1/season/import. The registry is
// replaced wholesale; a malformed file rejects the whole import.
func (h *SeasonHandler) ImportSeason(c *gin.Context) {
	var req SeasonFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.mu.Lock()
	err := h.engine.ImportSeasonData(req.Path)
	h.mu.Unlock()
	if err != nil {
		if errors.Is(err, engine.ErrMalformedImport) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "malformed_import"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	if h.cache != nil {
		if err := h.cache.InvalidateLeaders(c.Request.Context()); err != nil {
			h.log.WithError(err).Warn("Failed to invalidate leaderboard cache after import")
		}
	}

	c.JSON(http.StatusOK, gin.H{"path": req.Path, "players": h.engine.PlayerCount()})
}

// RefreshLeaderboards recomputes and caches leaderboards for the given
// stat categories. Used by the scheduled cache refresh job.
func (h *SeasonHandler) RefreshLeaderboards(categories []models.StatCategory, minGames int) {
	if h.cache == nil {
		return
	}
	ctx := context.Background()
	for _, category := range categories {
		h.mu.Lock()
		leaders := h.engine.GetLeagueLeaders(category, minGames)
		h.mu.Unlock()
		if err := h.cache.SetLeaders(ctx, category, minGames, leaders); err != nil {
			h.log.WithError(err).WithField("stat", category).Warn("Failed to refresh leaderboard cache")
		}
	}
}
