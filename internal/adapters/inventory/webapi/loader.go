package webapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/tradebot/internal/domain"
)

const (
	DefaultURL = "http://api.steampowered.com/IEconItems_440/GetPlayerItems/v0001/"

	statusOK         = 1
	maxResponseBytes = 16 << 20
	defaultTimeout   = 30 * time.Second
)

// Loader fetches the backpack of an account through the web API.
type Loader struct {
	url    string
	apiKey string
	http   *http.Client
}

func NewLoader(baseURL, apiKey string, httpClient *http.Client) *Loader {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Loader{url: baseURL, apiKey: apiKey, http: httpClient}
}

type itemsResponse struct {
	Result struct {
		Status int `json:"status"`
		Items  []struct {
			ID              uint64 `json:"id"`
			Defindex        int    `json:"defindex"`
			FlagCannotTrade bool   `json:"flag_cannot_trade"`
		} `json:"items"`
	} `json:"result"`
}

func (l *Loader) Load(ctx context.Context, steamID string) (domain.Inventory, error) {
	steamID = strings.TrimSpace(steamID)
	if steamID == "" {
		return domain.Inventory{}, fmt.Errorf("steam id is required")
	}

	endpoint, err := url.Parse(l.url)
	if err != nil {
		return domain.Inventory{}, fmt.Errorf("parse inventory url: %w", err)
	}
	query := endpoint.Query()
	query.Set("steamid", steamID)
	if l.apiKey != "" {
		query.Set("key", l.apiKey)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return domain.Inventory{}, fmt.Errorf("create inventory request: %w", err)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return domain.Inventory{}, fmt.Errorf("fetch inventory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Inventory{}, fmt.Errorf("fetch inventory: unexpected status %d", resp.StatusCode)
	}

	var payload itemsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return domain.Inventory{}, fmt.Errorf("decode inventory: %w", err)
	}
	if payload.Result.Status != statusOK {
		return domain.Inventory{}, fmt.Errorf("fetch inventory for %s: result status %d", steamID, payload.Result.Status)
	}

	inv := domain.Inventory{OwnerID: steamID, Items: make([]domain.InventoryItem, 0, len(payload.Result.Items))}
	for _, item := range payload.Result.Items {
		inv.Items = append(inv.Items, domain.InventoryItem{
			ID:          item.ID,
			Defindex:    item.Defindex,
			NotTradable: item.FlagCannotTrade,
		})
	}
	return inv, nil
}
