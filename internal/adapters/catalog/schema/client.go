package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/bnema/tradebot/internal/domain"
	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
)

const (
	DefaultURL = "http://api.steampowered.com/IEconItems_440/GetSchema/v0001/"
	DefaultTTL = time.Hour

	cacheKey         = "schema"
	maxResponseBytes = 64 << 20
	defaultTimeout   = 60 * time.Second
)

type Options struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
	TTL        time.Duration
	Logger     *zap.Logger
}

// Client serves catalog lookups from a schema fetched once per TTL. It is
// safe for concurrent use.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
	ttl    time.Duration
	logger *zap.Logger

	cache *ristretto.Cache
	fetch sync.Mutex
}

func New(opts Options) (*Client, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 10,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create schema cache: %w", err)
	}

	c := &Client{
		url:    opts.URL,
		apiKey: opts.APIKey,
		http:   opts.HTTPClient,
		ttl:    opts.TTL,
		logger: opts.Logger,
		cache:  cache,
	}
	if c.url == "" {
		c.url = DefaultURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

// ItemsByCraftMaterial returns the schema entries of one craft material
// type, ordered by defindex.
func (c *Client) ItemsByCraftMaterial(ctx context.Context, category string) ([]domain.CatalogItem, error) {
	idx, err := c.index(ctx)
	if err != nil {
		return nil, err
	}
	items := idx.byCategory[category]
	out := make([]domain.CatalogItem, len(items))
	copy(out, items)
	return out, nil
}

func (c *Client) Item(ctx context.Context, defindex int) (domain.CatalogItem, bool, error) {
	idx, err := c.index(ctx)
	if err != nil {
		return domain.CatalogItem{}, false, err
	}
	item, ok := idx.byDefindex[defindex]
	return item, ok, nil
}

// Categories lists every craft material type present in the schema.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	idx, err := c.index(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(idx.byCategory))
	for category := range idx.byCategory {
		out = append(out, category)
	}
	sort.Strings(out)
	return out, nil
}

func (c *Client) Close() {
	c.cache.Close()
}

type index struct {
	byDefindex map[int]domain.CatalogItem
	byCategory map[string][]domain.CatalogItem
}

func (c *Client) index(ctx context.Context) (*index, error) {
	if v, ok := c.cache.Get(cacheKey); ok {
		return v.(*index), nil
	}

	c.fetch.Lock()
	defer c.fetch.Unlock()
	if v, ok := c.cache.Get(cacheKey); ok {
		return v.(*index), nil
	}

	items, err := c.download(ctx)
	if err != nil {
		return nil, err
	}
	idx := buildIndex(items)
	c.cache.SetWithTTL(cacheKey, idx, 1, c.ttl)
	c.cache.Wait()

	c.logger.Info("item schema loaded", zap.Int("items", len(items)), zap.Int("categories", len(idx.byCategory)))
	return idx, nil
}

type schemaResponse struct {
	Result struct {
		Status int          `json:"status"`
		Items  []schemaItem `json:"items"`
	} `json:"result"`
}

type schemaItem struct {
	Defindex      int    `json:"defindex"`
	Name          string `json:"name"`
	ItemName      string `json:"item_name"`
	CraftMaterial string `json:"craft_material_type"`
}

func (c *Client) download(ctx context.Context) ([]domain.CatalogItem, error) {
	endpoint, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("parse schema url: %w", err)
	}
	if c.apiKey != "" {
		query := endpoint.Query()
		query.Set("key", c.apiKey)
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create schema request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch schema: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch schema: unexpected status %d", resp.StatusCode)
	}

	var payload schemaResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	if payload.Result.Status != 0 && payload.Result.Status != 1 {
		return nil, fmt.Errorf("fetch schema: result status %d", payload.Result.Status)
	}

	items := make([]domain.CatalogItem, 0, len(payload.Result.Items))
	for _, item := range payload.Result.Items {
		name := item.Name
		if name == "" {
			name = item.ItemName
		}
		items = append(items, domain.CatalogItem{Defindex: item.Defindex, Name: name, CraftMaterial: item.CraftMaterial})
	}
	return items, nil
}

func buildIndex(items []domain.CatalogItem) *index {
	idx := &index{
		byDefindex: make(map[int]domain.CatalogItem, len(items)),
		byCategory: make(map[string][]domain.CatalogItem),
	}
	for _, item := range items {
		idx.byDefindex[item.Defindex] = item
		if item.CraftMaterial != "" {
			idx.byCategory[item.CraftMaterial] = append(idx.byCategory[item.CraftMaterial], item)
		}
	}
	for category := range idx.byCategory {
		entries := idx.byCategory[category]
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Defindex < entries[j].Defindex })
	}
	return idx
}
