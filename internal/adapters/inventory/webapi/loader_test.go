package webapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bnema/tradebot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderLoadsInventory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "76561198000000001", r.URL.Query().Get("steamid"))
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"result":{"status":1,"items":[
			{"id":101,"defindex":5002},
			{"id":102,"defindex":5022,"flag_cannot_trade":true}
		]}}`))
	}))
	defer server.Close()

	inv, err := NewLoader(server.URL, "secret", server.Client()).Load(context.Background(), "76561198000000001")
	require.NoError(t, err)

	assert.Equal(t, domain.Inventory{
		OwnerID: "76561198000000001",
		Items: []domain.InventoryItem{
			{ID: 101, Defindex: 5002},
			{ID: 102, Defindex: 5022, NotTradable: true},
		},
	}, inv)
}

func TestLoaderRejectsFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "private backpack", status: http.StatusOK, body: `{"result":{"status":15}}`, want: "result status 15"},
		{name: "server error", status: http.StatusInternalServerError, body: ``, want: "unexpected status 500"},
		{name: "garbage", status: http.StatusOK, body: `<html>`, want: "decode inventory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewLoader(server.URL, "", server.Client()).Load(context.Background(), "76561198000000001")
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoaderRequiresSteamID(t *testing.T) {
	_, err := NewLoader("", "", nil).Load(context.Background(), " ")
	assert.Error(t, err)
}
