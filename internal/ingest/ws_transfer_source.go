package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

const (
	wsDialTimeout = 10 * time.Second
	wsRetryDelay  = 5 * time.Second
	wsEventBuffer = 1000
)

// transferFrame is the wire format of a transfer notification.
type transferFrame struct {
	TxHash       string  `json:"txHash"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	TokenSymbol  string  `json:"tokenSymbol"`
	TokenAddress string  `json:"tokenAddress"`
	Value        string  `json:"value"` // whole token units, decimal string
	PoolAddress  *string `json:"poolAddress,omitempty"`
	Tradeable    bool    `json:"tradeable"`
	ObservedAt   int64   `json:"observedAt"` // unix seconds
}

// WSTransferSource subscribes to a node's transfer feed over WebSocket
// and buffers notifications between polls. The read loop reconnects on
// failure until the context is cancelled; each poll takes up to one
// batch from the front of the buffer.
type WSTransferSource struct {
	url    string
	logger *log.Logger

	mu      sync.Mutex
	pending []*TransferCandidate
	started bool
}

// WSTransferSourceOptions configures a WSTransferSource.
type WSTransferSourceOptions struct {
	URL    string
	Logger *log.Logger
}

// NewWSTransferSource creates a WebSocket transfer source.
func NewWSTransferSource(opts WSTransferSourceOptions) *WSTransferSource {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &WSTransferSource{url: opts.URL, logger: logger}
}

// Start launches the read loop. It returns after the first connection
// attempt resolves; subsequent disconnects are retried in the background.
func (s *WSTransferSource) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("transfer source already started")
	}
	s.started = true
	s.mu.Unlock()

	conn, err := s.dial(ctx)
	if err != nil {
		return fmt.Errorf("connect transfer feed: %w", err)
	}

	go s.readLoop(ctx, conn)
	return nil
}

func (s *WSTransferSource) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, wsDialTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, s.url, nil)
	return conn, err
}

func (s *WSTransferSource) readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		if ctx.Err() != nil {
			conn.Close()
			return
		}

		_, payload, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			if ctx.Err() != nil {
				return
			}
			s.logger.Printf("[ws-transfers] read failed, reconnecting in %s: %v", wsRetryDelay, err)

			select {
			case <-time.After(wsRetryDelay):
			case <-ctx.Done():
				return
			}
			next, err := s.dial(ctx)
			if err != nil {
				s.logger.Printf("[ws-transfers] reconnect failed: %v", err)
				continue
			}
			conn = next
			continue
		}

		candidate, err := parseTransferFrame(payload)
		if err != nil {
			s.logger.Printf("[ws-transfers] dropping malformed frame: %v", err)
			continue
		}
		s.buffer(candidate)
	}
}

func (s *WSTransferSource) buffer(c *TransferCandidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, c)
	if len(s.pending) > wsEventBuffer {
		// Drop the oldest; the poll cadence should keep this from happening.
		s.pending = s.pending[len(s.pending)-wsEventBuffer:]
	}
}

// Fetch returns the oldest buffered notifications, at most one batch
// worth per call. The remainder stays pending for the next poll, so a
// burst larger than the batch cap is not lost.
func (s *WSTransferSource) Fetch(_ context.Context) ([]*TransferCandidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.pending)
	if n > maxBatch {
		n = maxBatch
	}
	out := make([]*TransferCandidate, n)
	copy(out, s.pending[:n])
	s.pending = s.pending[n:]
	if len(s.pending) == 0 {
		s.pending = nil
	}
	return out, nil
}

func parseTransferFrame(payload []byte) (*TransferCandidate, error) {
	var frame transferFrame
	if err := json.Unmarshal(payload, &frame); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	amount, err := decimal.NewFromString(frame.Value)
	if err != nil {
		return nil, fmt.Errorf("parse value %q: %w", frame.Value, err)
	}
	return &TransferCandidate{
		TxHash:       frame.TxHash,
		From:         frame.From,
		To:           frame.To,
		TokenSymbol:  frame.TokenSymbol,
		TokenAddress: frame.TokenAddress,
		Amount:       amount,
		PoolAddress:  frame.PoolAddress,
		Tradeable:    frame.Tradeable,
		ObservedAt:   time.Unix(frame.ObservedAt, 0).UTC(),
	}, nil
}

var _ TransferSource = (*WSTransferSource)(nil)
