package main

import (
	"time"

	"github.com/ericogr/vino-arena/internal/engine"
	"github.com/ericogr/vino-arena/internal/logging"
	"github.com/ericogr/vino-arena/internal/service"
	"github.com/ericogr/vino-arena/internal/storage"
)

// startTimeoutScanner claims battles whose action deadline passed and
// delegates handling to service.HandleTimedOutBattle. Claiming with a
// worker ID keeps multiple instances from forfeiting the same battle twice.
func startTimeoutScanner(repo storage.Repository, cfg service.Config, newRand func() engine.Rand, workerID string) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			ids, err := repo.ClaimTimedOutBattleIDs(now, 20, 2*time.Minute, workerID)
			if err != nil {
				logging.Error("timeout scanner failed to list ids", err, nil)
				continue
			}
			// process each id sequentially (keeps DB safe under SQLite)
			for _, id := range ids {
				if err := service.HandleTimedOutBattle(repo, newRand(), cfg, id, now); err != nil {
					logging.Error("failed to expire battle", err, logging.Fields{"battle_id": id})
				}
			}
		}
	}()
}
