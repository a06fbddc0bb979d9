package bot

import "testing"

func usePool(t *testing.T, ids ...BotIdentity) {
	t.Helper()
	identitiesMu.Lock()
	prev := botIdentities
	botIdentities = ids
	for _, identity := range ids {
		botIDMap[identity.UserID] = identity
	}
	identitiesMu.Unlock()

	t.Cleanup(func() {
		identitiesMu.Lock()
		defer identitiesMu.Unlock()
		botIdentities = prev
		for _, identity := range ids {
			delete(botIDMap, identity.UserID)
		}
	})
}

func TestNewSeatAgent(t *testing.T) {
	usePool(t,
		BotIdentity{UserID: "u-bot-1", DisplayName: "One", Difficulty: "smart"},
		BotIdentity{UserID: "u-bot-2", DisplayName: "Two", Difficulty: "good"},
		BotIdentity{UserID: "u-bot-3", DisplayName: "Three", Difficulty: "smart"},
	)

	tests := []struct {
		name   string
		seat   int
		seated []string
		want   string
	}{
		{name: "free identity for the seat", seat: 1, want: "u-bot-2"},
		{name: "skips a seated identity", seat: 0, seated: []string{"u-bot-1"}, want: "u-bot-2"},
		{name: "wraps around the pool", seat: 3, seated: []string{"u-bot-1", "u-bot-3"}, want: "u-bot-2"},
		{name: "exhausted pool uses a seat id", seat: 3, seated: []string{"u-bot-1", "u-bot-2", "u-bot-3"}, want: "bot-seat-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seated := func(userID string) bool {
				for _, id := range tt.seated {
					if id == userID {
						return true
					}
				}
				return false
			}
			agent, err := NewSeatAgent(tt.seat, seated)
			if err != nil {
				t.Fatalf("NewSeatAgent: %v", err)
			}
			if agent.ID != tt.want {
				t.Fatalf("agent id = %q, want %q", agent.ID, tt.want)
			}
			if !IsBot(agent.ID) {
				t.Fatalf("%q is not registered as a bot", agent.ID)
			}
		})
	}
}
