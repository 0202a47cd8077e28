package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fixtureSteamID = "76561198000000001"
	fixtureAdminID = "76561198000000002"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestIdentityListRendersFixture(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, filepath.Join(home, "bot-1.events")))

	stdout, _, err := executeCLI(t, home, "identity", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "identities: 1")
	assert.Contains(t, stdout, "Crate Bot (bot-1)")
	assert.Contains(t, stdout, "admins: "+fixtureAdminID)
}

func TestIdentityListJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, filepath.Join(home, "bot-1.events")))

	stdout, _, err := executeCLI(t, home, "identity", "list", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"ID\": \"bot-1\"")
}

func TestIdentityAddThenList(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home,
		"identity", "add",
		"--id", "bot-2",
		"--display-name", "Metal Bot",
		"--steam-id", "76561198000000009",
		"--admin", fixtureAdminID,
		"--admin", " "+fixtureAdminID+" ",
		"--events", "/tmp/bot-2.events",
		"--max-idle", "5m",
	)
	require.NoError(t, err)
	assert.Equal(t, "saved identity bot-2\n", stdout)

	raw, err := os.ReadFile(filepath.Join(home, ".tradebot", "settings.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "bot-2")
	assert.Contains(t, string(raw), "5m0s")

	stdout, _, err = executeCLI(t, home, "identity", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Metal Bot (bot-2)")
	assert.Contains(t, stdout, "admins: "+fixtureAdminID)
	assert.NotContains(t, stdout, fixtureAdminID+", ")
}

func TestIdentityAddValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing steam id",
			args: []string{"identity", "add", "--id", "bot-3", "--events", "/tmp/e"},
			want: `required flag(s) "steam-id" not set`,
		},
		{
			name: "unknown handler",
			args: []string{"identity", "add", "--id", "bot-3", "--steam-id", "3", "--events", "/tmp/e", "--handler", "auction"},
			want: "unknown handler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCLI(t, t.TempDir(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSecretSetAndDelete(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "secret", "set", "tradebot/api_key", "--value", "abc123")
	require.NoError(t, err)

	path := filepath.Join(home, ".tradebot", "secrets", "tradebot", "api_key")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", string(bytes.TrimSpace(raw)))

	_, _, err = executeCLI(t, home, "secret", "delete", "tradebot/api_key")
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCatalogListResolvesAliasWithStoredKey(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSettingsFixture(home, filepath.Join(home, "bot-1.events")))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "stored-key", r.URL.Query().Get("key"))
		_, _ = fmt.Fprint(w, `{"result":{"status":1,"items":[
			{"defindex":5022,"name":"Mann Co. Supply Crate","craft_material_type":"supply_crate"},
			{"defindex":5002,"name":"Refined Metal","craft_material_type":"craft_bar"},
			{"defindex":5041,"name":"Mann Co. Supply Crate Series 2","craft_material_type":"supply_crate"}
		]}}`)
	}))
	t.Cleanup(server.Close)
	t.Setenv("TB_SCHEMA_URL", server.URL)
	t.Setenv("TB_API_KEY", "")

	_, _, err := executeCLI(t, home, "secret", "set", "tradebot/api_key", "--value", "stored-key")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "catalog", "list", "crates")
	require.NoError(t, err)
	assert.Equal(t, "5022\tMann Co. Supply Crate\n5041\tMann Co. Supply Crate Series 2\n", stdout)

	stdout, _, err = executeCLI(t, home, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "craft_bar")
	assert.Contains(t, stdout, "supply_crate")
}

func TestCatalogListWithoutAPIKey(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TB_API_KEY", "")

	_, _, err := executeCLI(t, home, "catalog", "list", "metal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is not configured")
}

func TestRunWithoutIdentities(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "run", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no identities configured")
}

func TestRunClosesIdentityWhenEventStreamEnds(t *testing.T) {
	home := t.TempDir()
	events := filepath.Join(home, "bot-1.events")
	require.NoError(t, os.WriteFile(events, []byte(
		`{"type":"friend_add","from":"`+fixtureAdminID+`"}`+"\n"+
			`{"type":"trade_request","from":"76561198000000077"}`+"\n",
	), 0o600))
	require.NoError(t, writeSettingsFixture(home, events))
	t.Setenv("TB_API_KEY", "env-key")

	stdout, _, err := executeCLI(t, home, "run", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Crate Bot (bot-1)")
	assert.Contains(t, stdout, "closed")

	raw, err := os.ReadFile(filepath.Join(home, "bot-1.responses"))
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(raw), []byte("\n"))
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"type":"friend_add_response","to":"`+fixtureAdminID+`","accept":true}`, string(lines[0]))
	assert.JSONEq(t, `{"type":"trade_request_response","to":"76561198000000077","accept":false}`, string(lines[1]))
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSettingsFixture(home string, eventsPath string) error {
	configDir := filepath.Join(home, ".tradebot")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	settings := fmt.Sprintf(`version = 1
api_key_ref = "tradebot/api_key"
stagger = "0s"
crash_ceiling = 3

[[identities]]
id = "bot-1"
display_name = "Crate Bot"
steam_id = %q
handler = "command"
admins = [%q]
events_path = %q
responses_path = %q
poll_interval = "1s"
max_idle = "5m"
`, fixtureSteamID, fixtureAdminID, eventsPath, filepath.Join(home, "bot-1.responses"))

	return os.WriteFile(filepath.Join(configDir, "settings.toml"), []byte(settings), 0o644)
}
