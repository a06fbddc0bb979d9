package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcVoiceToken signs a voice chat token for the calling user.
	RpcVoiceToken = "voice_token"

	// MatchNameNarcos is the authoritative match handler name registered with Nakama.
	MatchNameNarcos = "narcos_match"

	// GameLabel is the game name carried by the match label.
	GameLabel = "narcos"

	// MaxSeats is the number of seats a match offers.
	MaxSeats = 4
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpDrawHand  int64 = 2
	OpPlaceCard int64 = 3
	OpAdvance   int64 = 4

	// Server -> Client events
	OpMatchState     int64 = 101
	OpGameStarted    int64 = 102
	OpHandDealt      int64 = 103 // send privately
	OpCardPlaced     int64 = 104
	OpPhaseChanged   int64 = 105
	OpPlayerSwitched int64 = 106
	OpChipDropped    int64 = 107
	OpChipMoved      int64 = 108
	OpChipDiscarded  int64 = 109
	OpCardRetired    int64 = 110
	OpEventCardDrawn int64 = 111
	OpEffectApplied  int64 = 112
	OpBankChanged    int64 = 113
	OpGameError      int64 = 114
)

// Runtime env keys read by the match handler and RPCs.
const (
	envBotsEnabled      = "narcos_bots_enabled"
	envBotMinDelay      = "narcos_bot_min_delay_sec"
	envBotMaxDelay      = "narcos_bot_max_delay_sec"
	envBotAutoFillDelay = "narcos_bot_auto_fill_delay_sec"
	envVoiceSecret      = "narcos_voice_secret"
	envVoiceIssuer      = "narcos_voice_issuer"
	envVoiceDomain      = "narcos_voice_domain"
)

// Data files loaded at module start.
const (
	gameConfigPath    = "data/game_config.json"
	botIdentitiesPath = "data/bot_identities.json"
)
