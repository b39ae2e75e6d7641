package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ericogr/vino-arena/internal/constants"
	"github.com/ericogr/vino-arena/internal/service"
	"github.com/gin-gonic/gin"
)

// GetBattle returns the caller's access-controlled view of a battle.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id, ok := parseBattleID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	snap, err := service.GetSnapshot(h.repo, h.cfg.Moves, id, email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInBattle})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSnapshot})
		}
		return
	}

	out, err := MarshalForContext(c, snap)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSnapshot})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListOpenBattles returns public waiting battles that are still fresh enough
// to list.
func (h *BattleHandler) ListOpenBattles(c *gin.Context) {
	battles, err := h.repo.ListOpenBattles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	out, err := MarshalForContext(c, battles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Leaderboard returns the top player profiles ordered by rating.
func (h *BattleHandler) Leaderboard(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	profiles, err := h.repo.TopProfiles(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalForContext(c, profiles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetPlayerStats returns the caller's own profile.
func (h *BattleHandler) GetPlayerStats(c *gin.Context) {
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	p, err := h.repo.GetProfile(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	out, err := MarshalForContext(c, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, out)
}

type UpdatePlayerStatsPayload struct {
	Name string `json:"name"`
}

// UpdatePlayerStats updates the caller's display name.
func (h *BattleHandler) UpdatePlayerStats(c *gin.Context) {
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var req UpdatePlayerStatsPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.repo.UpsertProfile(email, req.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Profile updated"})
}

// ListCellar returns the caller's wines, including their in-battle flags.
func (h *BattleHandler) ListCellar(c *gin.Context) {
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	wines, err := h.repo.ListWinesByOwner(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCellar})
		return
	}
	out, err := MarshalForContext(c, wines)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCellar})
		return
	}
	c.JSON(http.StatusOK, out)
}
