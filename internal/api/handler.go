package api

import (
	"github.com/ericogr/vino-arena/internal/engine"
	"github.com/ericogr/vino-arena/internal/service"
	"github.com/ericogr/vino-arena/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo    storage.Repository
	cfg     service.Config
	newRand func() engine.Rand
}

// NewBattleHandler creates a new BattleHandler with the given repository,
// resolution config and RNG factory. Each submitted action draws from a
// fresh source so handler calls stay independent.
func NewBattleHandler(repo storage.Repository, cfg service.Config, newRand func() engine.Rand) *BattleHandler {
	return &BattleHandler{repo: repo, cfg: cfg, newRand: newRand}
}
