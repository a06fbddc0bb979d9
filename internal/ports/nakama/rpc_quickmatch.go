package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when requesting a lobby-capable match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// quickMatchQuery selects lobbies of this game with at least one free seat.
const quickMatchQuery = "+label.game:" + GameLabel + " +label.phase:lobby +label.open:>=1"

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcVoiceToken, RpcVoiceTokenHandler)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	limit := 10
	authoritative := true

	minSize := 1
	maxSize := MaxSeats - 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, quickMatchQuery)
	if err != nil {
		logger.Error("QuickMatch: MatchList error: %v", err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}

	if len(matches) > 0 {
		return quickMatchResponse(matches[0].MatchId, false)
	}

	// Seat and owner assignment happens in MatchJoin.
	matchID, err := nk.MatchCreate(ctx, MatchNameNarcos, map[string]interface{}{})
	if err != nil {
		logger.Error("QuickMatch: MatchCreate error: %v", err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}
	logger.Info("QuickMatch: Created match %s", matchID)
	return quickMatchResponse(matchID, true)
}

func quickMatchResponse(matchID string, isNew bool) (string, error) {
	b, err := json.Marshal(QuickMatchResponse{MatchID: matchID, IsNew: isNew})
	if err != nil {
		return "", runtime.NewError("Internal error", 13)
	}
	return string(b), nil
}
