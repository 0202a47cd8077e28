package tradeweb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "http://steamcommunity.com/trade/"
	maxResponseBytes = 1 << 20

	cmdStatus      = "tradestatus"
	cmdChat        = "chat"
	cmdAddItem     = "additem"
	cmdRemoveItem  = "removeitem"
	cmdToggleReady = "toggleready"
	cmdConfirm     = "confirm"
	cmdCancel      = "cancel"
)

// TransportError reports that the endpoint could not be reached or answered
// with something other than a decodable JSON body.
type TransportError struct {
	Command string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("trade %s: %v", e.Command, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	// Limiter paces mutating calls. Nil means unlimited.
	Limiter *rate.Limiter
	Logger  *zap.Logger
}

// Client drives one trade session. It owns the event log cursor.
type Client struct {
	opts         Options
	tradeURL     string
	sessionID    string
	sessionIDEsc string
	login        string
	logger       *zap.Logger

	mu     sync.Mutex
	cursor domain.Cursor
}

var _ ports.TradeAPI = (*Client)(nil)

func NewClient(creds domain.Credentials, counterparty string, opts Options) (*Client, error) {
	if creds.Empty() {
		return nil, domain.ErrNoCredentials
	}
	counterparty = strings.TrimSpace(counterparty)
	if counterparty == "" {
		return nil, errors.New("counterparty is required")
	}

	tradeURL, err := buildTradeURL(opts.BaseURL, counterparty)
	if err != nil {
		return nil, err
	}

	sessionIDEsc, err := url.PathUnescape(creds.SessionID)
	if err != nil {
		sessionIDEsc = creds.SessionID
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		opts:         opts,
		tradeURL:     tradeURL,
		sessionID:    creds.SessionID,
		sessionIDEsc: sessionIDEsc,
		login:        creds.LoginCookie,
		logger:       logger.With(zap.String("counterparty", counterparty)),
		cursor:       domain.NewCursor(),
	}, nil
}

func (c *Client) Cursor() domain.Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Poll fetches the current trade status. It never retries; a transport or
// decode failure leaves the cursor untouched.
func (c *Client) Poll(ctx context.Context) (domain.StatusSnapshot, error) {
	form := c.baseForm()
	c.setLogPosVersion(form)

	body, err := c.post(ctx, cmdStatus, form)
	if err != nil {
		return domain.StatusSnapshot{}, err
	}

	var resp statusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.StatusSnapshot{}, &TransportError{Command: cmdStatus, Err: fmt.Errorf("decode status response: %w", err)}
	}

	snapshot := resp.snapshot()
	logPos := snapshot.LogPos
	if tail := snapshot.Tail(); tail > logPos {
		logPos = tail
	}

	c.mu.Lock()
	c.cursor = c.cursor.Advance(snapshot.Version, logPos)
	c.mu.Unlock()

	return snapshot, nil
}

func (c *Client) SendMessage(ctx context.Context, text string) bool {
	form := c.baseForm()
	c.setLogPosVersion(form)
	form.Set("message", text)

	return c.flatten(c.Execute(ctx, cmdChat, form))
}

func (c *Client) AddItem(ctx context.Context, itemID uint64, slot int) bool {
	form := c.baseForm()
	setItemSlot(form, itemID, slot)

	return c.flatten(c.Execute(ctx, cmdAddItem, form))
}

func (c *Client) RemoveItem(ctx context.Context, itemID uint64, slot int) bool {
	form := c.baseForm()
	setItemSlot(form, itemID, slot)

	return c.flatten(c.Execute(ctx, cmdRemoveItem, form))
}

func (c *Client) SetReady(ctx context.Context, ready bool) bool {
	form := c.baseForm()
	form.Set("ready", strconv.FormatBool(ready))
	form.Set("version", strconv.Itoa(c.Cursor().Version))

	return c.flatten(c.Execute(ctx, cmdToggleReady, form))
}

func (c *Client) AcceptTrade(ctx context.Context) bool {
	form := c.baseForm()
	form.Set("version", strconv.Itoa(c.Cursor().Version))

	return c.flatten(c.Execute(ctx, cmdConfirm, form))
}

func (c *Client) CancelTrade(ctx context.Context) bool {
	return c.flatten(c.Execute(ctx, cmdCancel, c.baseForm()))
}

// Execute sends a mutating command and keeps the accepted, rejected and
// transport cases apart. The bool methods flatten its result.
func (c *Client) Execute(ctx context.Context, cmd string, form url.Values) (domain.Outcome, error) {
	if c.opts.Limiter != nil {
		if err := c.opts.Limiter.Wait(ctx); err != nil {
			return domain.OutcomeTransportError, &TransportError{Command: cmd, Err: err}
		}
	}

	body, err := c.post(ctx, cmd, form)
	if err != nil {
		return domain.OutcomeTransportError, err
	}

	var resp commandResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.OutcomeTransportError, &TransportError{Command: cmd, Err: fmt.Errorf("decode response: %w", err)}
	}

	if resp.Version > 0 {
		c.mu.Lock()
		c.cursor = c.cursor.Advance(int(resp.Version), 0)
		c.mu.Unlock()
	}

	if !resp.Success {
		if resp.Error != "" {
			return domain.OutcomeRejected, fmt.Errorf("trade %s rejected: %s", cmd, resp.Error)
		}
		return domain.OutcomeRejected, nil
	}

	return domain.OutcomeAccepted, nil
}

func (c *Client) flatten(outcome domain.Outcome, err error) bool {
	switch outcome {
	case domain.OutcomeAccepted:
		return true
	case domain.OutcomeRejected:
		c.logger.Debug("trade command rejected", zap.Error(err))
	default:
		c.logger.Warn("trade command failed", zap.Error(err))
	}
	return false
}

func (c *Client) post(ctx context.Context, cmd string, form url.Values) ([]byte, error) {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, c.tradeURL+cmd, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Command: cmd, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: c.sessionID})
	req.AddCookie(&http.Cookie{Name: "steamLogin", Value: c.login})

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, &TransportError{Command: cmd, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{Command: cmd, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Command: cmd, Err: fmt.Errorf("read response: %w", err)}
	}

	return body, nil
}

func (c *Client) baseForm() url.Values {
	form := url.Values{}
	form.Set("sessionid", c.sessionIDEsc)
	return form
}

func (c *Client) setLogPosVersion(form url.Values) {
	cursor := c.Cursor()
	form.Set("logpos", strconv.Itoa(cursor.LogPos))
	form.Set("version", strconv.Itoa(cursor.Version))
}

func setItemSlot(form url.Values, itemID uint64, slot int) {
	form.Set("appid", strconv.Itoa(domain.ItemAppID))
	form.Set("contextid", strconv.Itoa(domain.ItemContextID))
	form.Set("itemid", strconv.FormatUint(itemID, 10))
	form.Set("slot", strconv.Itoa(slot))
}

func (c *Client) httpClient() *http.Client {
	if c.opts.HTTPClient != nil {
		return c.opts.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func buildTradeURL(baseURL string, counterparty string) (string, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse trade base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("trade base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("trade base url host is required")
	}

	return strings.TrimRight(parsed.String(), "/") + "/" + url.PathEscape(counterparty) + "/", nil
}

// ClientFactory opens one Client per accepted trade. When Rate is set and
// Options carries no Limiter, each client gets a limiter of its own.
type ClientFactory struct {
	Options Options
	Rate    rate.Limit
	Burst   int
}

var _ ports.TradeAPIFactory = ClientFactory{}

func (f ClientFactory) Open(creds domain.Credentials, counterparty string) (ports.TradeAPI, error) {
	opts := f.Options
	if opts.Limiter == nil && f.Rate > 0 {
		burst := f.Burst
		if burst < 1 {
			burst = 1
		}
		opts.Limiter = rate.NewLimiter(f.Rate, burst)
	}

	client, err := NewClient(creds, counterparty, opts)
	if err != nil {
		return nil, fmt.Errorf("open trade client: %w", err)
	}
	return client, nil
}
