package staff

import (
	"sync"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/order"
)

// TVBoard drives the pickup screen: it shows only orders that are ready and
// announces each one exactly once, even though refreshes keep listing it
// until pickup.
type TVBoard struct {
	mu        sync.Mutex
	announced map[string]struct{}
}

// NewTVBoard returns an empty board.
func NewTVBoard() *TVBoard {
	return &TVBoard{announced: make(map[string]struct{})}
}

// Update filters a dashboard snapshot down to ready orders and returns the
// subset that should be announced now: orders seen ready for the first time.
func (b *TVBoard) Update(orders []api.Order) (ready, announce []api.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, o := range orders {
		if order.Status(o.Status) != order.StatusReady {
			continue
		}
		ready = append(ready, o)
		if _, seen := b.announced[o.ID]; !seen {
			b.announced[o.ID] = struct{}{}
			announce = append(announce, o)
		}
	}
	return ready, announce
}
