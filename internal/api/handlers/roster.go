package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fieldsim/gridiron/internal/engine"
	"github.com/fieldsim/gridiron/internal/roster"
)

// RosterHandler exposes roster and contract management over HTTP. Rating
// data flows one way: the roster layer reads engine summaries and never
// writes ratings back.
type RosterHandler struct {
	mu      sync.Mutex
	manager *roster.Manager
	engine  *engine.Engine
	log     *logrus.Logger
}

// NewRosterHandler creates the roster handler.
func NewRosterHandler(manager *roster.Manager, eng *engine.Engine, log *logrus.Logger) *RosterHandler {
	return &RosterHandler{
		manager: manager,
		engine:  eng,
		log:     log,
	}
}

// SignPlayerRequest is the body for adding a player to a team roster.
type SignPlayerRequest struct {
	PlayerKey string          `json:"player_key" binding:"required"`
	Spot      string          `json:"spot"`
	Contract  roster.Contract `json:"contract" binding:"required"`
}

// SignPlayer handles POST /api/v1/rosters/:team/players.
func (h *RosterHandler) SignPlayer(c *gin.Context) {
	var req SignPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	spot := roster.RosterSpot(req.Spot)
	if req.Spot == "" {
		spot = roster.SpotActive
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	team, err := h.manager.TeamRoster(c.Param("team"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "unknown_team"})
		return
	}
	if err := team.AddPlayer(req.PlayerKey, req.Contract, spot); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, roster.ErrRosterFull) || errors.Is(err, roster.ErrSquadFull) {
			status = http.StatusConflict
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"player_key":    req.PlayerKey,
		"team":          team.TeamCode,
		"available_cap": team.AvailableCap,
	})
}

// FreeAgentRequest is the body for pooling a free agent.
type FreeAgentRequest struct {
	PlayerKey string `json:"player_key" binding:"required"`
}

// PoolFreeAgent handles POST /api/v1/rosters/free-agents.
func (h *RosterHandler) PoolFreeAgent(c *gin.Context) {
	var req FreeAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.mu.Lock()
	h.manager.AddFreeAgent(req.PlayerKey)
	h.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"player_key": req.PlayerKey})
}

// ListFreeAgents handles GET /api/v1/rosters/free-agents.
func (h *RosterHandler) ListFreeAgents(c *gin.Context) {
	h.mu.Lock()
	pool := h.manager.FreeAgents()
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"free_agents": pool, "count": len(pool)})
}

// TradeRequest is the body for a player trade.
type TradeRequest struct {
	PlayerKey string `json:"player_key" binding:"required"`
	FromTeam  string `json:"from_team" binding:"required"`
	ToTeam    string `json:"to_team" binding:"required"`
}

// TradePlayer handles POST /api/v1/rosters/trade.
func (h *RosterHandler) TradePlayer(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.mu.Lock()
	err := h.manager.TradePlayer(req.PlayerKey, req.FromTeam, req.ToTeam)
	h.mu.Unlock()
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, roster.ErrUnknownTeam), errors.Is(err, roster.ErrNotOnRoster):
			status = http.StatusNotFound
		case errors.Is(err, roster.ErrInsufficientCap), errors.Is(err, roster.ErrNoTradeClause):
			status = http.StatusConflict
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"player_key": req.PlayerKey,
		"from_team":  req.FromTeam,
		"to_team":    req.ToTeam,
	})
}

// GetAnalysis handles GET /api/v1/rosters/:team/analysis.
func (h *RosterHandler) GetAnalysis(c *gin.Context) {
	h.mu.Lock()
	analysis, err := h.manager.AnalyzeTeam(c.Param("team"), h.engine)
	h.mu.Unlock()
	if err != nil {
		if errors.Is(err, roster.ErrUnknownTeam) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "unknown_team"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis)
}
