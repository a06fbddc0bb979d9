package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "good" or "smart"
}

var defaultIdentities = []BotIdentity{
	{DeviceID: "narcos-bot-0001", Username: "el_patron", DisplayName: "El Patrón", Difficulty: "smart"},
	{DeviceID: "narcos-bot-0002", Username: "la_reina", DisplayName: "La Reina", Difficulty: "good"},
	{DeviceID: "narcos-bot-0003", Username: "el_contador", DisplayName: "El Contador", Difficulty: "smart"},
}

var (
	identitiesMu  sync.RWMutex
	botIdentities = defaultIdentities
	botIDMap      = map[string]BotIdentity{}
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities replaces the built-in bot profiles with the ones in path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		var ids []BotIdentity
		if err := json.Unmarshal(data, &ids); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		if len(ids) == 0 {
			return
		}

		identitiesMu.Lock()
		defer identitiesMu.Unlock()
		botIdentities = ids
		for _, identity := range ids {
			if identity.UserID != "" {
				botIDMap[identity.UserID] = identity
			}
		}
	})
	return loadErr
}

// ProvisionBots ensures that bot accounts exist in the Nakama database and carry the is_bot metadata.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	provisionOnce.Do(func() {
		identitiesMu.Lock()
		defer identitiesMu.Unlock()

		for i := range botIdentities {
			identity := &botIdentities[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: Failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":     true,
				"difficulty": identity.Difficulty,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: Failed to update bot account %s: %v", userID, err)
			}

			botIDMap[userID] = *identity
			logger.Info("ProvisionBots: Bot %s (%s) is ready. Difficulty: %s", identity.DisplayName, userID, identity.Difficulty)
		}
	})
}

// GetBotIdentity returns an identity for a bot by index (mod pool size).
// Unprovisioned identities get a stable local user id.
func GetBotIdentity(index int) BotIdentity {
	identitiesMu.Lock()
	defer identitiesMu.Unlock()

	identity := botIdentities[index%len(botIdentities)]
	if identity.UserID == "" {
		identity.UserID = fmt.Sprintf("bot-%d", index)
		botIDMap[identity.UserID] = identity
	}
	return identity
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	identitiesMu.RLock()
	defer identitiesMu.RUnlock()
	_, ok := botIDMap[userID]
	return ok
}

// DisplayName returns the display name of a bot, or "" for other users.
func DisplayName(userID string) string {
	identitiesMu.RLock()
	defer identitiesMu.RUnlock()
	return botIDMap[userID].DisplayName
}

// NewAgent builds an agent for the identity at index.
func NewAgent(index int) (*Agent, error) {
	return newAgent(GetBotIdentity(index))
}

// NewSeatAgent builds an agent for seat whose user id is not seated yet.
// Pooled identities are tried first; once every one of them is playing the
// agent gets a local id unique to the seat.
func NewSeatAgent(seat int, seated func(userID string) bool) (*Agent, error) {
	identitiesMu.Lock()
	size := len(botIdentities)
	identitiesMu.Unlock()

	for i := 0; i < size; i++ {
		identity := GetBotIdentity((seat + i) % size)
		if !seated(identity.UserID) {
			return newAgent(identity)
		}
	}

	identitiesMu.Lock()
	identity := botIdentities[seat%size]
	identity.UserID = fmt.Sprintf("bot-seat-%d", seat)
	botIDMap[identity.UserID] = identity
	identitiesMu.Unlock()
	return newAgent(identity)
}

func newAgent(identity BotIdentity) (*Agent, error) {
	brain, err := NewBrain(ParseLevel(identity.Difficulty))
	if err != nil {
		return nil, err
	}
	return &Agent{ID: identity.UserID, Name: identity.DisplayName, Strategy: brain}, nil
}
