package domain

import (
	"fmt"
	"strings"
	"time"
)

type IdentityID string

const DefaultHandler = "command"

// Identity is one automated account the supervisor keeps alive.
type Identity struct {
	ID            IdentityID
	DisplayName   string
	SteamID       string
	Handler       string
	Admins        []string
	EventsPath    string
	ResponsesPath string
	PollInterval  time.Duration
	MaxIdle       time.Duration
}

func (i Identity) Validate() error {
	if strings.TrimSpace(string(i.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(i.SteamID) == "" {
		return fmt.Errorf("identity %s: steam id is required", i.ID)
	}
	if strings.TrimSpace(i.EventsPath) == "" {
		return fmt.Errorf("identity %s: events path is required", i.ID)
	}
	if i.PollInterval < 0 {
		return fmt.Errorf("identity %s: poll interval must not be negative", i.ID)
	}

	return nil
}

func (i Identity) IsAdmin(steamID string) bool {
	steamID = strings.TrimSpace(steamID)
	if steamID == "" {
		return false
	}
	for _, admin := range i.Admins {
		if admin == steamID {
			return true
		}
	}
	return false
}

func (i Identity) Name() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return string(i.ID)
}

func (i *Identity) NormalizeAdmins() {
	if i == nil {
		return
	}

	admins := make([]string, 0, len(i.Admins))
	seen := make(map[string]struct{}, len(i.Admins))
	for _, admin := range i.Admins {
		trimmed := strings.TrimSpace(admin)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		admins = append(admins, trimmed)
	}

	i.Admins = admins
}

// Settings holds process-wide values shared by every identity.
type Settings struct {
	APIKeyRef    string
	Stagger      time.Duration
	CrashCeiling int
}

const (
	DefaultStagger      = 5 * time.Second
	DefaultCrashCeiling = 1000
	DefaultPollInterval = time.Second
)

func (s Settings) WithDefaults() Settings {
	if s.Stagger <= 0 {
		s.Stagger = DefaultStagger
	}
	if s.CrashCeiling <= 0 {
		s.CrashCeiling = DefaultCrashCeiling
	}
	return s
}

// Credentials is the session material handed over by the network layer.
type Credentials struct {
	SessionID   string
	LoginCookie string
}

func (c Credentials) Empty() bool {
	return c.SessionID == "" || c.LoginCookie == ""
}
