package api

import (
	"errors"
	"net/http"

	"github.com/ericogr/vino-arena/internal/battle"
	"github.com/ericogr/vino-arena/internal/constants"
	"github.com/ericogr/vino-arena/internal/service"
	"github.com/gin-gonic/gin"
)

type ActionRequest struct {
	Kind     string `json:"kind"`
	WineID   uint   `json:"wine_id"`
	Move     string `json:"move"`
	TargetID uint   `json:"target_id"`
	Name     string `json:"name"`
}

// SubmitAction validates and resolves the caller's action for the current
// turn and returns the updated state together with the action outcome.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	id, ok := parseBattleID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	action := battle.Action{
		Kind:     battle.ActionKind(req.Kind),
		WineID:   req.WineID,
		Move:     req.Move,
		TargetID: req.TargetID,
		Name:     req.Name,
	}

	st, outcome, err := service.SubmitAction(h.repo, h.newRand(), h.cfg, id, email, action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInBattle})
		case errors.Is(err, service.ErrBattleNotInProgress):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
		case errors.Is(err, service.ErrNotYourTurn):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
		case errors.Is(err, service.ErrMalformedAction):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		case errors.Is(err, service.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrStaleTurn})
		case errors.Is(err, service.ErrSettlement):
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrSettlementFailed})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		}
		return
	}

	out, err := MarshalForContext(c, gin.H{"state": st, "outcome": outcome})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		return
	}
	c.JSON(http.StatusOK, out)
}
