package iostorage

import (
	"context"
	"sync"

	"github.com/inslake/inslake/pkg/storage"
	"github.com/inslake/inslake/pkg/table"
)

// Mem is an in-memory Store for tests. It keeps the encoded payloads, so
// tests can assert byte-for-byte idempotence, and supports failure
// injection per table name.
type Mem struct {
	mu      sync.Mutex
	objects map[string][]byte

	// FailLoad and FailStore inject an error for a table name.
	FailLoad  map[string]error
	FailStore map[string]error
}

// NewMem creates an empty in-memory store.
func NewMem() *Mem {
	return &Mem{objects: make(map[string][]byte)}
}

func (m *Mem) Load(_ context.Context, name string) (*table.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.FailLoad[name]; err != nil {
		return nil, err
	}
	data, ok := m.objects[name]
	if !ok {
		return nil, NotFoundError(name)
	}
	return decodeTable(data, name)
}

func (m *Mem) Store(
	_ context.Context, t *table.Table, name string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.FailStore[name]; err != nil {
		return err
	}
	data, err := encodeTable(t)
	if err != nil {
		return CorruptError(name, err)
	}
	m.objects[name] = data
	return nil
}

// Bytes returns the stored payload of a table, or nil.
func (m *Mem) Bytes(name string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[name]
}

// Names returns the stored table names.
func (m *Mem) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]string, 0, len(m.objects))
	for name := range m.objects {
		res = append(res, name)
	}
	return res
}

var _ storage.Store = (*Mem)(nil)
