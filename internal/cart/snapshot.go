// internal/cart/snapshot.go
package cart

import (
	"encoding/json"
	"fmt"
)

// StorageKey is the fixed key the cart snapshot lives under.
const StorageKey = "soundwave-cart"

// KeyFor scopes the storage key to a browsing session.
func KeyFor(sessionID string) string {
	if sessionID == "" {
		return StorageKey
	}
	return StorageKey + ":" + sessionID
}

// Encode serializes the line sequence as [{"product":…,"quantity":…}, …].
func Encode(lines []Line) ([]byte, error) {
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

// Decode parses a snapshot and restores the cart invariants: lines without a
// product id or with a quantity outside 1..MaxLineQuantity are dropped, and
// repeated product ids are merged into the first occurrence up to the cap.
func Decode(data []byte) ([]Line, int, error) {
	var raw []Line
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("parse cart snapshot: %w", err)
	}

	lines := make([]Line, 0, len(raw))
	dropped := 0
	for _, l := range raw {
		if l.Product.ID == "" || l.Quantity < 1 || l.Quantity > MaxLineQuantity {
			dropped++
			continue
		}
		if i := indexOf(lines, l.Product.ID); i >= 0 {
			lines[i].Quantity = min(lines[i].Quantity+l.Quantity, MaxLineQuantity)
			dropped++
			continue
		}
		lines = append(lines, l)
	}
	return lines, dropped, nil
}
