package store

import (
	"context"
	"math/rand"
	"time"

	"github.com/agencydesk/agencydesk/pkg/logger"
)

// Latency returns the simulated network delay for one operation.
type Latency func() time.Duration

// NoLatency completes operations on the next scheduler tick; used by tests.
func NoLatency() Latency {
	return func() time.Duration { return 0 }
}

// FixedLatency delays every operation by the same amount.
func FixedLatency(d time.Duration) Latency {
	return func() time.Duration { return d }
}

// JitterLatency delays each operation independently within [min, max], which
// means the completion order of two concurrent operations is not guaranteed
// to match their issue order.
func JitterLatency(min, max time.Duration) Latency {
	if max < min {
		max = min
	}
	return func() time.Duration {
		if max == min {
			return min
		}
		return min + time.Duration(rand.Int63n(int64(max-min)))
	}
}

// Client is the chainable query interface over one TableStore. It never
// caches rows beyond a single call.
type Client struct {
	store   *TableStore
	latency Latency
	logger  logger.Logger
	now     func() time.Time
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

func WithLatency(latency Latency) ClientOption {
	return func(c *Client) { c.latency = latency }
}

func WithLogger(log logger.Logger) ClientOption {
	return func(c *Client) { c.logger = log }
}

func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

func NewClient(store *TableStore, opts ...ClientOption) *Client {
	c := &Client{
		store:   store,
		latency: NoLatency(),
		logger:  logger.NewMockLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns a handle on one named table.
func (c *Client) Table(name string) *Table {
	return &Table{client: c, name: name}
}

// Store exposes the underlying table store for composition-root wiring.
func (c *Client) Store() *TableStore {
	return c.store
}

// do schedules fn after the simulated latency and waits for it. If the
// caller's context is canceled first, do returns early but the timer still
// fires and fn still runs against the shared store; abandoning a pending
// operation does not cancel its effect.
func (c *Client) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	time.AfterFunc(c.latency(), func() {
		fn()
		close(done)
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Table is a per-table query entry point.
type Table struct {
	client *Client
	name   string
}

// Insert appends rows, assigning a numeric id and created_at stamp to any
// row missing them, and returns the stored copies. The table is created on
// first use. Well-formed input never fails; there is no schema validation.
func (t *Table) Insert(ctx context.Context, rows ...Row) ([]Row, error) {
	var inserted []Row
	err := t.client.do(ctx, func() {
		inserted = t.client.store.insertRows(t.name, rows, t.client.now().UTC())
		t.client.logger.WithField("table", t.name).WithField("rows", len(inserted)).Debug("store insert")
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// Select starts a read query.
func (t *Table) Select() *SelectQuery {
	return &SelectQuery{table: t}
}

// Update starts a shallow-merge write of patch onto every matching row.
func (t *Table) Update(patch Row) *UpdateQuery {
	return &UpdateQuery{table: t, patch: patch}
}

// Delete starts a removal of every matching row.
func (t *Table) Delete() *DeleteQuery {
	return &DeleteQuery{table: t}
}
