package constants

// Centralized constants for headers, env keys, routes, and API messages.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvArenaConfig         = "ARENA_CONFIG"
	EnvArenaDB             = "ARENA_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "va_session"
)

// Routes used by the backend router
const (
	RouteAPIPrefix    = "/api"
	RouteAuthSession  = "/auth/session"
	RouteOpenBattles  = "/open-battles"
	RouteLeaderboard  = "/leaderboard"
	RoutePlayerStats  = "/player-stats"
	RouteCellar       = "/cellar"
	RouteBattles      = "/battles"
	RouteBattlesJoin  = "/battles/join"
	RouteBattleByID   = "/battles/:battleID"
	RouteBattleCancel = "/battles/:battleID/cancel"
	RouteBattleAction = "/battles/:battleID/action"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest  = "Invalid request"
	ErrInvalidBattleID = "Invalid battle ID"
	ErrBattleNotFound  = "Battle not found"

	ErrFailedCreateBattle     = "Failed to create battle"
	ErrFailedJoinBattle       = "Failed to join battle"
	ErrFailedCancelBattle     = "Failed to cancel battle"
	ErrFailedFetchBattles     = "Failed to fetch battles"
	ErrFailedFetchSnapshot    = "Failed to fetch battle snapshot"
	ErrFailedFetchCellar      = "Failed to fetch cellar"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedStoreAction      = "Failed to store action"

	ErrBattleNotInProgress = "Battle is not in progress"
	ErrBattleNotJoinable   = "Battle cannot be joined"
	ErrCancelNotAllowed    = "Battle can only be cancelled before it starts"
	ErrPlayerNotInBattle   = "Player not in this battle"
	ErrNotYourTurn         = "It is not your turn"
	ErrWineNotOwned        = "Wine is not in your committed roster"
	ErrWineCommitted       = "Wine is already committed to a battle"
	ErrInvalidRoster       = "Invalid roster"
	ErrStaleTurn           = "Battle state changed; reload and retry"
	ErrSettlementFailed    = "Failed to settle battle"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
	ErrEmailRequired  = "email is required"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldPlayer   = "player"
	LogFieldAddr     = "addr"
	LogFieldWorkerID = "worker_id"
)
