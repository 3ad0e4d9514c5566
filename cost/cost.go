package cost

import (
	"sync"
)

// Compute returns the price of tokens at perThousand currency units per 1000 tokens.
func Compute(tokens int, perThousand float64) float64 {
	return (float64(tokens) / 1000) * perThousand
}

// Default cost thresholds.
const (
	DefaultWarning  = 0.01
	DefaultCritical = 0.10
	DefaultMaxDaily = 1.00
)

// Level classifies a cost against Thresholds.
type Level int

// Level constants, from cheapest to most expensive.
const (
	LevelOK Level = iota
	LevelWarning
	LevelCritical
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelOK:
		return "ok"
	case LevelWarning:
		return "warning"
	case LevelCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Thresholds are the cost levels at which callers should warn.
type Thresholds struct {
	Warning  float64 `json:"warning" yaml:"warning" mapstructure:"warning"`
	Critical float64 `json:"critical" yaml:"critical" mapstructure:"critical"`
	MaxDaily float64 `json:"max_daily" yaml:"max_daily" mapstructure:"max_daily"`
}

// DefaultThresholds returns the default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Warning:  DefaultWarning,
		Critical: DefaultCritical,
		MaxDaily: DefaultMaxDaily,
	}
}

// Classify returns the level of a single cost. A zero threshold is disabled.
func (t Thresholds) Classify(c float64) Level {
	switch {
	case t.Critical > 0 && c >= t.Critical:
		return LevelCritical
	case t.Warning > 0 && c >= t.Warning:
		return LevelWarning
	default:
		return LevelOK
	}
}

// Usage is the token usage and cost recorded for one model.
type Usage struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	Requests     int     `json:"requests"`
	Cost         float64 `json:"cost"`
}

// Add adds other to u.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.Requests += other.Requests
	u.Cost += other.Cost
}

// TotalTokens returns input plus output tokens.
func (u Usage) TotalTokens() int {
	return u.InputTokens + u.OutputTokens
}

// Tracker accumulates usage per model over a session and compares the total
// against the MaxDaily threshold. Nothing is persisted.
type Tracker struct {
	mu         sync.Mutex
	thresholds Thresholds
	totals     map[string]Usage
}

// NewTracker creates a tracker for the given thresholds.
func NewTracker(t Thresholds) *Tracker {
	return &Tracker{
		thresholds: t,
		totals:     make(map[string]Usage),
	}
}

// Record adds one request's usage for model.
func (t *Tracker) Record(model string, u Usage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if u.Requests == 0 {
		u.Requests = 1
	}
	total := t.totals[model]
	total.Add(u)
	t.totals[model] = total
}

// Usage returns the usage recorded for model.
func (t *Tracker) Usage(model string) Usage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totals[model]
}

// Summary returns a copy of the usage per model.
func (t *Tracker) Summary() map[string]Usage {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]Usage, len(t.totals))
	for k, v := range t.totals {
		out[k] = v
	}
	return out
}

// Total returns usage aggregated across models.
func (t *Tracker) Total() Usage {
	t.mu.Lock()
	defer t.mu.Unlock()

	var total Usage
	for _, u := range t.totals {
		total.Add(u)
	}
	return total
}

// Level classifies the total cost so far.
func (t *Tracker) Level() Level {
	return t.thresholds.Classify(t.Total().Cost)
}

// OverDaily reports whether the total cost has reached MaxDaily.
// A zero MaxDaily disables the limit.
func (t *Tracker) OverDaily() bool {
	return t.thresholds.MaxDaily > 0 && t.Total().Cost >= t.thresholds.MaxDaily
}

// Remaining returns how much of MaxDaily is left, never below zero.
func (t *Tracker) Remaining() float64 {
	left := t.thresholds.MaxDaily - t.Total().Cost
	if left < 0 {
		return 0
	}
	return left
}

// Reset clears all recorded usage.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totals = make(map[string]Usage)
}
