// Package idgen produces the prefixed, time-sortable identifiers used for
// every domain entity. Identifiers are ULIDs: 26 Crockford base-32
// characters, the first 10 encoding the millisecond timestamp and the last
// 16 carrying random entropy, so ids generated at different milliseconds
// sort in creation order.
package idgen

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefix tags an identifier with its owning entity kind.
type Prefix string

const (
	PrefixContact    Prefix = "CNT"
	PrefixSubmission Prefix = "SUB"
	PrefixForm       Prefix = "FRM"
	PrefixActivity   Prefix = "ACT"
	PrefixCMS        Prefix = "CMS"
	PrefixCompany    Prefix = "COMP"
)

// ErrInvalidFormat reports an identifier that is not a valid 26-character
// base-32 string after optional prefix stripping.
type ErrInvalidFormat struct {
	ID     string
	Reason string
}

func (e *ErrInvalidFormat) Error() string {
	return fmt.Sprintf("invalid identifier format %q: %s", e.ID, e.Reason)
}

// Generator mints identifiers. The zero value is not usable; construct with
// NewGenerator. Clock and entropy are injectable for tests.
type Generator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy io.Reader
}

// Option customizes a Generator.
type Option func(*Generator)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithEntropy overrides the random source.
func WithEntropy(r io.Reader) Option {
	return func(g *Generator) { g.entropy = r }
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		now:     time.Now,
		entropy: rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New returns a bare 26-character sortable identifier.
func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now().UTC()), g.entropy).String()
}

// NewPrefixed returns "<PREFIX>-<id>".
func (g *Generator) NewPrefixed(prefix Prefix) string {
	return string(prefix) + "-" + g.New()
}

var defaultGenerator = NewGenerator()

// New mints an identifier from the process-wide generator.
func New() string {
	return defaultGenerator.New()
}

// NewPrefixed mints a prefixed identifier from the process-wide generator.
func NewPrefixed(prefix Prefix) string {
	return defaultGenerator.NewPrefixed(prefix)
}

// DecodeTimestamp strips an optional entity prefix and decodes the embedded
// millisecond timestamp. Identifiers that are not exactly 26 characters over
// the base-32 alphabet are rejected with *ErrInvalidFormat.
func DecodeTimestamp(id string) (int64, error) {
	raw := id
	if i := strings.IndexByte(raw, '-'); i >= 0 {
		raw = raw[i+1:]
	}
	parsed, err := ulid.ParseStrict(raw)
	if err != nil {
		return 0, &ErrInvalidFormat{ID: id, Reason: err.Error()}
	}
	return int64(parsed.Time()), nil
}
