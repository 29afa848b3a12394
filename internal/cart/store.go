package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/peasmarket/storefront/pkg/logger"
)

// SnapshotStore persists whole cart snapshots keyed by session. Every save
// fully overwrites the prior record; there are no partial updates. A missing
// or unparseable record loads as an empty cart; the parse failure is logged
// rather than surfaced, so a corrupted snapshot never strands the visitor.
type SnapshotStore interface {
	Load(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, c Cart) error
}

// MemoryStore keeps serialized snapshots in process memory. It backs tests
// and the memory cart driver; serialization is real so round-trip behavior
// matches the redis store.
type MemoryStore struct {
	logg *logger.Logger

	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore(logg *logger.Logger) *MemoryStore {
	return &MemoryStore{logg: logg, data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	m.mu.Lock()
	raw, ok := m.data[sessionID]
	m.mu.Unlock()
	if !ok {
		return Cart{}, nil
	}
	return decodeSnapshot(ctx, m.logg, sessionID, raw), nil
}

func (m *MemoryStore) Save(ctx context.Context, sessionID string, c Cart) error {
	raw, err := json.Marshal(c.Items)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[sessionID] = raw
	m.mu.Unlock()
	return nil
}

// seed plants a raw snapshot, valid or not. Test hook.
func (m *MemoryStore) seed(sessionID string, raw []byte) {
	m.mu.Lock()
	m.data[sessionID] = raw
	m.mu.Unlock()
}

// decodeSnapshot parses a persisted snapshot, falling back to an empty cart
// when the record does not parse. The fallback is logged so corruption stays
// observable instead of being silently masked.
func decodeSnapshot(ctx context.Context, logg *logger.Logger, sessionID string, raw []byte) Cart {
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		if logg != nil {
			ctx = logg.WithSessionID(ctx, sessionID)
			logg.Warn(ctx, "cart.snapshot_unreadable, starting empty")
		}
		return Cart{}
	}
	return Cart{Items: items}
}
