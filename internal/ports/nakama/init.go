package nakama

import (
	"context"
	"database/sql"

	"narcos/internal/bot"
	"narcos/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig(gameConfigPath); err != nil {
		logger.Warn("InitModule: Using default game rules: %v", err)
	}
	if err := bot.LoadIdentities(botIdentitiesPath); err != nil {
		logger.Warn("InitModule: Using built-in bot identities: %v", err)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if env[envBotsEnabled] == "true" {
		bot.ProvisionBots(ctx, nk, logger)
	}
	voiceService = newVoiceServiceFromEnv(env)
	if voiceService == nil {
		logger.Info("InitModule: Voice chat disabled, %s/%s/%s not set.", envVoiceSecret, envVoiceIssuer, envVoiceDomain)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameNarcos, NewMatch); err != nil {
		return err
	}

	logger.Info("Narcos Go module loaded.")
	return nil
}
