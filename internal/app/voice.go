package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
)

var (
	ErrVoiceNotConfigured = errors.New("voice service is not configured")
	ErrVoiceUserRequired  = errors.New("voice token user is required")
	ErrVoiceChannel       = errors.New("voice channel is required for join tokens")
	ErrVoiceAction        = errors.New("unsupported voice action")
)

const (
	VoiceActionLogin = "login"
	VoiceActionJoin  = "join"

	voiceTokenTTL = time.Hour
)

// VoiceService signs access tokens for the table voice channel. Each match
// gets one channel named after the match id.
type VoiceService struct {
	secret string
	issuer string
	domain string
	clock  Clock
}

// NewVoiceService constructs a VoiceService. A nil clock uses wall time.
func NewVoiceService(secret, issuer, domain string, clock Clock) *VoiceService {
	if clock == nil {
		clock = SystemClock()
	}
	return &VoiceService{secret: secret, issuer: issuer, domain: domain, clock: clock}
}

// Configured reports whether tokens can be signed.
func (s *VoiceService) Configured() bool {
	return s != nil && s.secret != "" && s.issuer != "" && s.domain != ""
}

// GenerateToken signs a login token, or a join token for the given channel.
func (s *VoiceService) GenerateToken(user, action, channel string) (string, error) {
	if !s.Configured() {
		return "", ErrVoiceNotConfigured
	}
	if user == "" {
		return "", ErrVoiceUserRequired
	}

	from := s.userURI(user)
	var to string
	switch action {
	case VoiceActionLogin:
		to = from
	case VoiceActionJoin:
		if channel == "" {
			return "", ErrVoiceChannel
		}
		to = s.channelURI(channel)
	default:
		return "", fmt.Errorf("%w: %q", ErrVoiceAction, action)
	}

	now := s.clock.Now()
	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": user,
		"exp": now.Add(voiceTokenTTL).Unix(),
		"vxa": action,
		"vxi": uuid.NewString(),
		"f":   from,
		"t":   to,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

func (s *VoiceService) userURI(user string) string {
	return "sip:." + s.issuer + "." + user + ".@" + s.domain
}

func (s *VoiceService) channelURI(channel string) string {
	return "sip:confctl-g-" + channel + "@" + s.domain
}
