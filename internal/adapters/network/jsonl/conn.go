package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports"
	"go.uber.org/zap"
)

const maxLineBytes = 1 << 20

type wireEvent struct {
	Type      string `json:"type"`
	From      string `json:"from,omitempty"`
	Text      string `json:"text,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Login     string `json:"login,omitempty"`
}

type wireReply struct {
	Type   string `json:"type"`
	To     string `json:"to"`
	Accept *bool  `json:"accept,omitempty"`
	Text   string `json:"text,omitempty"`
}

type readResult struct {
	line []byte
	err  error
}

// Conn reads network events from one JSONL stream and appends replies to
// another.
type Conn struct {
	src     io.ReadCloser
	replies *Writer
	logger  *zap.Logger

	lines     chan readResult
	done      chan struct{}
	closeOnce sync.Once
}

func NewConn(src io.ReadCloser, replies *Writer, logger *zap.Logger) *Conn {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Conn{
		src:     src,
		replies: replies,
		logger:  logger,
		lines:   make(chan readResult),
		done:    make(chan struct{}),
	}
	go c.read()
	return c
}

func (c *Conn) read() {
	defer close(c.lines)

	scanner := bufio.NewScanner(c.src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := append([]byte(nil), scanner.Bytes()...)
		select {
		case c.lines <- readResult{line: line}:
		case <-c.done:
			return
		}
	}

	err := scanner.Err()
	if err == nil {
		return
	}
	select {
	case c.lines <- readResult{err: err}:
	case <-c.done:
	}
}

// Next blocks until the next well-formed event. Malformed lines are logged
// and skipped. It returns io.EOF once the stream ends.
func (c *Conn) Next(ctx context.Context) (domain.NetworkEvent, error) {
	for {
		select {
		case <-ctx.Done():
			return domain.NetworkEvent{}, ctx.Err()
		case res, ok := <-c.lines:
			if !ok {
				return domain.NetworkEvent{}, io.EOF
			}
			if res.err != nil {
				return domain.NetworkEvent{}, fmt.Errorf("read event stream: %w", res.err)
			}
			if len(res.line) == 0 {
				continue
			}

			var raw wireEvent
			if err := json.Unmarshal(res.line, &raw); err != nil {
				c.logger.Warn("skipping malformed network event", zap.Error(err))
				continue
			}
			return raw.toDomain(), nil
		}
	}
}

func (c *Conn) Respond(_ context.Context, reply domain.NetworkReply) error {
	record := wireReply{Type: string(reply.Type), To: reply.To, Text: reply.Text}
	if reply.Type != domain.NetworkReplyFriendMessage {
		accept := reply.Accept
		record.Accept = &accept
	}
	if err := c.replies.Write(record); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}
	return nil
}

func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = errors.Join(c.src.Close(), c.replies.Close())
	})
	return err
}

func (e wireEvent) toDomain() domain.NetworkEvent {
	return domain.NetworkEvent{
		Type: domain.NetworkEventType(e.Type),
		From: e.From,
		Text: e.Text,
		Credentials: domain.Credentials{
			SessionID:   e.SessionID,
			LoginCookie: e.Login,
		},
	}
}

// Dialer opens the event and reply streams configured for an identity.
type Dialer struct {
	Logger *zap.Logger
}

func (d Dialer) Dial(_ context.Context, identity domain.Identity) (ports.Network, error) {
	src, err := os.Open(identity.EventsPath)
	if err != nil {
		return nil, fmt.Errorf("open event stream for %s: %w", identity.ID, err)
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewConn(src, NewWriter(identity.ResponsesPath), logger), nil
}
