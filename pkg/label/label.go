// Package label decides which text, if any, is drawn on a segment.
//
// The default policy labels a segment with its share of the full circle
// formatted as a percentage with two decimals ("12.50%"), and suppresses
// labels for segments covering 2.5% of the circle or less, where text would
// overlap its neighbours.
//
// Any [Provider] can replace the default. A [Holder] keeps the provider that
// is currently active and refuses to be cleared: setting a nil provider keeps
// the previous one.
package label

import (
	"fmt"
	"sync"

	"github.com/matzehuels/sunburst/pkg/segment"
)

// DefaultThreshold is the largest share of the circle that stays unlabeled.
const DefaultThreshold = 0.025

// Provider returns the label for a node, or false when the node is not labeled.
type Provider interface {
	Label(n *segment.Node) (string, bool)
}

// ProviderFunc adapts a function to [Provider].
type ProviderFunc func(n *segment.Node) (string, bool)

// Label implements [Provider].
func (f ProviderFunc) Label(n *segment.Node) (string, bool) { return f(n) }

// FormatPercent formats a fraction as a percentage with two decimals.
func FormatPercent(share float64) string {
	return fmt.Sprintf("%.2f%%", share*100)
}

// Percent labels nodes with their share of the circle.
type Percent struct {
	// Threshold suppresses labels for shares less than or equal to it.
	Threshold float64
}

// Default returns the default percentage policy.
func Default() Provider {
	return Percent{Threshold: DefaultThreshold}
}

// Label implements [Provider].
func (p Percent) Label(n *segment.Node) (string, bool) {
	share := n.Share()
	if share <= p.Threshold {
		return "", false
	}
	return FormatPercent(share), true
}

// Named labels nodes with their name followed by their share, using the same
// threshold rule as [Percent]. Nodes without a name get the share only.
type Named struct {
	Threshold float64
}

// Label implements [Provider].
func (p Named) Label(n *segment.Node) (string, bool) {
	pct, ok := Percent(p).Label(n)
	if !ok {
		return "", false
	}
	if n.Name == "" {
		return pct, true
	}
	return n.Name + " " + pct, true
}

// NameOnly labels nodes with their name when they are wider than the threshold.
type NameOnly struct {
	Threshold float64
}

// Label implements [Provider].
func (p NameOnly) Label(n *segment.Node) (string, bool) {
	if n.Share() <= p.Threshold || n.Name == "" {
		return "", false
	}
	return n.Name, true
}

// None never labels anything.
var None Provider = ProviderFunc(func(*segment.Node) (string, bool) { return "", false })

// Holder holds the active provider. The zero value uses [Default].
type Holder struct {
	mu sync.RWMutex
	p  Provider
}

// NewHolder returns a holder using p, or [Default] when p is nil.
func NewHolder(p Provider) *Holder {
	h := &Holder{}
	h.Set(p)
	return h
}

// Set replaces the active provider. Nil providers are ignored.
func (h *Holder) Set(p Provider) {
	if isNil(p) {
		return
	}
	h.mu.Lock()
	h.p = p
	h.mu.Unlock()
}

// Provider returns the active provider.
func (h *Holder) Provider() Provider {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.p == nil {
		return Default()
	}
	return h.p
}

// Label implements [Provider] by delegating to the active provider.
func (h *Holder) Label(n *segment.Node) (string, bool) {
	return h.Provider().Label(n)
}

func isNil(p Provider) bool {
	if p == nil {
		return true
	}
	if f, ok := p.(ProviderFunc); ok && f == nil {
		return true
	}
	if h, ok := p.(*Holder); ok && h == nil {
		return true
	}
	return false
}
