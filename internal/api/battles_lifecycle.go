package api

import (
	"errors"
	"net/http"

	"github.com/ericogr/vino-arena/internal/constants"
	"github.com/ericogr/vino-arena/internal/service"
	"github.com/gin-gonic/gin"
)

type CreateBattlePayload struct {
	Category string `json:"category"`
	Private  bool   `json:"private"`
	EntryFee int    `json:"entry_fee"`
	WineIDs  []uint `json:"wine_ids"`
}

// CreateBattle opens a new battle with the caller's roster and returns the
// battle ID and join code.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	b, err := service.CreateBattle(h.repo, generateJoinCode(), service.CreateBattleRequest{
		Email:    email,
		Name:     sessionName(c),
		Category: req.Category,
		Private:  req.Private,
		EntryFee: req.EntryFee,
		WineIDs:  req.WineIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRoster):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoster})
		case errors.Is(err, service.ErrWineNotOwned):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrWineNotOwned})
		case errors.Is(err, service.ErrWineCommitted):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrWineCommitted})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"battle_id": b.ID,
		"join_code": b.JoinCode,
	})
}

type JoinBattlePayload struct {
	JoinCode string `json:"join_code"`
	WineIDs  []uint `json:"wine_ids"`
}

// JoinBattle commits the caller's roster to a waiting battle found by its
// join code and starts the match.
func (h *BattleHandler) JoinBattle(c *gin.Context) {
	var req JoinBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	found, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}

	b, err := service.JoinBattle(h.repo, found.ID, service.JoinBattleRequest{
		Email:   email,
		Name:    sessionName(c),
		WineIDs: req.WineIDs,
	}, h.cfg.TurnTimeout)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrBattleNotJoinable):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotJoinable})
		case errors.Is(err, service.ErrInvalidRoster):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoster})
		case errors.Is(err, service.ErrWineNotOwned):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrWineNotOwned})
		case errors.Is(err, service.ErrWineCommitted):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrWineCommitted})
		case errors.Is(err, service.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrStaleTurn})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedJoinBattle})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"battle_id": b.ID,
		"join_code": b.JoinCode,
		"message":   "Successfully joined battle",
	})
}

// CancelBattle cancels a waiting battle and releases the committed roster.
func (h *BattleHandler) CancelBattle(c *gin.Context) {
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

	if err := service.CancelBattle(h.repo, id, email); err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInBattle})
		case errors.Is(err, service.ErrCancelNotAllowed):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCancelNotAllowed})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCancelBattle})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Battle cancelled"})
}
