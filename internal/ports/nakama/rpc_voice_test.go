package nakama

import (
	"context"
	"encoding/json"
	"testing"

	"narcos/internal/app"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/runtime"
)

func TestRpcVoiceToken_GeneratesValidClaims(t *testing.T) {
	t.Cleanup(func() { voiceService = nil })

	voiceService = newVoiceServiceFromEnv(map[string]string{
		envVoiceSecret: "test-secret",
		envVoiceIssuer: "issuer",
		envVoiceDomain: "example.com",
	})
	if voiceService == nil {
		t.Fatalf("voice service not built from a complete env")
	}

	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")

	raw1, err := RpcVoiceTokenHandler(ctx, noopLogger{}, nil, nil, `{"action":"join","channel":"match-1"}`)
	if err != nil {
		t.Fatalf("RpcVoiceTokenHandler error: %v", err)
	}
	raw2, err := RpcVoiceTokenHandler(ctx, noopLogger{}, nil, nil, `{}`)
	if err != nil {
		t.Fatalf("RpcVoiceTokenHandler error: %v", err)
	}

	claims1 := parseVoiceClaims(t, parseToken(t, raw1), "test-secret")
	claims2 := parseVoiceClaims(t, parseToken(t, raw2), "test-secret")

	if claims1["vxa"] != app.VoiceActionJoin || claims1["t"] != "sip:confctl-g-match-1@example.com" {
		t.Fatalf("unexpected join claims %v", claims1)
	}
	if claims2["vxa"] != app.VoiceActionLogin {
		t.Fatalf("empty action should default to login, got %v", claims2["vxa"])
	}
	if claims1["vxi"] == claims2["vxi"] {
		t.Fatalf("vxi claim must be unique per token")
	}
}

func TestRpcVoiceToken_Errors(t *testing.T) {
	t.Cleanup(func() { voiceService = nil })

	authed := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")

	tests := []struct {
		name       string
		configured bool
		ctx        context.Context
		payload    string
	}{
		{name: "Unauthenticated", configured: true, ctx: context.Background(), payload: `{}`},
		{name: "BadPayload", configured: true, ctx: authed, payload: `not json`},
		{name: "JoinWithoutChannel", configured: true, ctx: authed, payload: `{"action":"join"}`},
		{name: "UnknownAction", configured: true, ctx: authed, payload: `{"action":"kick"}`},
		{name: "NotConfigured", configured: false, ctx: authed, payload: `{}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			voiceService = nil
			if test.configured {
				voiceService = app.NewVoiceService("s", "i", "d", nil)
			}
			if _, err := RpcVoiceTokenHandler(test.ctx, noopLogger{}, nil, nil, test.payload); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestNewVoiceServiceFromEnv_Incomplete(t *testing.T) {
	if svc := newVoiceServiceFromEnv(map[string]string{envVoiceSecret: "s"}); svc != nil {
		t.Fatalf("expected nil service for incomplete env")
	}
}

func parseToken(t *testing.T, jsonRaw string) string {
	t.Helper()
	var resp voiceTokenResponse
	if err := json.Unmarshal([]byte(jsonRaw), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token in response")
	}
	return resp.Token
}

func parseVoiceClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse token: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", token.Claims)
	}
	return claims
}
