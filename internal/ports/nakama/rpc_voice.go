package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"narcos/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// voiceService is set by InitModule from the runtime env.
var voiceService *app.VoiceService

type voiceTokenRequest struct {
	Action  string `json:"action"`
	Channel string `json:"channel"`
}

type voiceTokenResponse struct {
	Token string `json:"token"`
}

// newVoiceServiceFromEnv builds the voice service from the runtime env. It
// returns nil when any setting is missing.
func newVoiceServiceFromEnv(env map[string]string) *app.VoiceService {
	svc := app.NewVoiceService(env[envVoiceSecret], env[envVoiceIssuer], env[envVoiceDomain], nil)
	if !svc.Configured() {
		return nil
	}
	return svc
}

// RpcVoiceTokenHandler signs a voice token for the calling user. Join tokens
// name the match id as channel.
func RpcVoiceTokenHandler(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Authentication required", 16) // UNAUTHENTICATED
	}

	var req voiceTokenRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
	}
	if req.Action == "" {
		req.Action = app.VoiceActionLogin
	}

	token, err := voiceService.GenerateToken(userID, req.Action, req.Channel)
	switch {
	case errors.Is(err, app.ErrVoiceNotConfigured):
		logger.Warn("VoiceToken: Voice service is not configured.")
		return "", runtime.NewError("Voice chat unavailable", 14) // UNAVAILABLE
	case errors.Is(err, app.ErrVoiceChannel), errors.Is(err, app.ErrVoiceAction):
		return "", runtime.NewError(err.Error(), 3)
	case err != nil:
		logger.Error("VoiceToken: Failed to sign token for %s: %v", userID, err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}

	b, err := json.Marshal(voiceTokenResponse{Token: token})
	if err != nil {
		return "", runtime.NewError("Internal error", 13)
	}
	return string(b), nil
}
