package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIdentityValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		identity Identity
		wantErr  string
	}{
		{
			name:     "valid",
			identity: Identity{ID: "bot-1", SteamID: "7656", EventsPath: "/tmp/bot-1.events"},
		},
		{
			name:     "missing id",
			identity: Identity{SteamID: "7656", EventsPath: "/tmp/bot-1.events"},
			wantErr:  "id is required",
		},
		{
			name:     "missing steam id",
			identity: Identity{ID: "bot-1", EventsPath: "/tmp/bot-1.events"},
			wantErr:  "steam id is required",
		},
		{
			name:     "missing events path",
			identity: Identity{ID: "bot-1", SteamID: "7656"},
			wantErr:  "events path is required",
		},
		{
			name:     "negative poll interval",
			identity: Identity{ID: "bot-1", SteamID: "7656", EventsPath: "/tmp/e", PollInterval: -time.Second},
			wantErr:  "poll interval",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.identity.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestIdentityNormalizeAdminsDeduplicatesAndDropsEmpty(t *testing.T) {
	t.Parallel()

	identity := Identity{Admins: []string{"1", " ", "2", "1", " 2 ", "3"}}
	identity.NormalizeAdmins()

	assert.Equal(t, []string{"1", "2", "3"}, identity.Admins)
}

func TestIdentityIsAdmin(t *testing.T) {
	identity := Identity{Admins: []string{"76561198000000002"}}

	assert.True(t, identity.IsAdmin("76561198000000002"))
	assert.False(t, identity.IsAdmin("76561198000000003"))
	assert.False(t, identity.IsAdmin(""))
}

func TestSettingsWithDefaults(t *testing.T) {
	s := Settings{}.WithDefaults()
	assert.Equal(t, DefaultStagger, s.Stagger)
	assert.Equal(t, DefaultCrashCeiling, s.CrashCeiling)

	s = Settings{Stagger: time.Second, CrashCeiling: 3}.WithDefaults()
	assert.Equal(t, time.Second, s.Stagger)
	assert.Equal(t, 3, s.CrashCeiling)
}
