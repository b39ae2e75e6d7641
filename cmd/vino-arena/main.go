package main

import (
	"time"

	"github.com/ericogr/vino-arena/internal/api"
	"github.com/ericogr/vino-arena/internal/constants"
	"github.com/ericogr/vino-arena/internal/engine"
	"github.com/ericogr/vino-arena/internal/logging"
	"github.com/ericogr/vino-arena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Load a local .env when present; real deployments set the variables
	// directly.
	_ = godotenv.Load()

	settings := loadSettingsOrExit()
	cfg := loadConfigOrExit(settings.ConfigPath)
	repo := createRepositoryOrExit(settings.DatabasePath, cfg)

	svcCfg := service.Config{
		Moves:       cfg.Moves,
		Chart:       cfg.Chart,
		Rules:       cfg.Rating,
		Hook:        engine.DefaultEffectHook,
		TurnTimeout: cfg.TurnTimeout,
	}
	newRand := func() engine.Rand {
		return engine.NewRand(time.Now().UnixNano())
	}

	handler := api.NewBattleHandler(repo, svcCfg, newRand)
	authHandler := api.NewAuthHandler(repo, []byte(settings.SessionSecret), settings.SessionSecureCookie)

	if cfg.TurnTimeout > 0 {
		workerID := uuid.NewString()
		startTimeoutScanner(repo, svcCfg, newRand, workerID)
		logging.Info("Turn timeout scanner enabled", logging.Fields{
			constants.LogFieldWorkerID: workerID,
			"turn_timeout":             cfg.TurnTimeout.String(),
		})
	}

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.POST(constants.RouteAuthSession, authHandler.CreateSession)
		apiRoutes.DELETE(constants.RouteAuthSession, authHandler.DeleteSession)
		apiRoutes.GET("/version", api.Version)

		// Public endpoints
		apiRoutes.GET(constants.RouteOpenBattles, handler.ListOpenBattles)
		apiRoutes.GET(constants.RouteLeaderboard, handler.Leaderboard)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired([]byte(settings.SessionSecret)))

		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RoutePlayerStats, handler.UpdatePlayerStats)
		protected.GET(constants.RouteCellar, handler.ListCellar)

		protected.POST(constants.RouteBattles, handler.CreateBattle)
		protected.POST(constants.RouteBattlesJoin, handler.JoinBattle)
		protected.GET(constants.RouteBattleByID, handler.GetBattle)
		protected.POST(constants.RouteBattleCancel, handler.CancelBattle)
		protected.POST(constants.RouteBattleAction, handler.SubmitAction)
	}

	addr := settings.ListenAddress
	if cfg.ServerAddress != "" {
		addr = cfg.ServerAddress
	}
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
