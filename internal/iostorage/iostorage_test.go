package iostorage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inslake/inslake/pkg/storage"
	"github.com/inslake/inslake/pkg/table"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	res := table.New("bronze/erp_payments",
		table.Column{Name: "payment_id", Type: table.String},
		table.Column{Name: "amount", Type: table.Float},
		table.Column{Name: "payment_date", Type: table.Date},
	)
	require.NoError(t, res.Append([]any{
		"pay1", 250.0, time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, res.Append([]any{"pay2", nil, nil}))
	return res
}

func TestDirRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newDir(t.TempDir())
	in := sampleTable(t)

	require.NoError(t, store.Store(ctx, in, "bronze/erp_payments"))

	out, err := store.Load(ctx, "bronze/erp_payments")
	require.NoError(t, err)
	assert.Equal(t, in.Columns, out.Columns)
	assert.Equal(t, in.Rows, out.Rows)
}

func TestDirStagePaths(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := newDir(root)

	require.NoError(t, store.Store(ctx, sampleTable(t), "silver/erp_payments"))

	_, err := os.Stat(
		filepath.Join(root, "silver", "erp_payments.gob"),
	)
	assert.NoError(t, err, "stage prefix becomes a subdirectory")
}

func TestDirNotFound(t *testing.T) {
	store := newDir(t.TempDir())

	_, err := store.Load(context.Background(), "bronze/no_such_table")
	require.Error(t, err)
	assert.True(t, storage.IsNotFound(err))
	assert.False(t, storage.IsTransient(err))
}

func TestDirCorrupt(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := newDir(root)

	path := filepath.Join(root, "bronze", "erp_payments.gob")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("not gob"), 0644))

	_, err := store.Load(ctx, "bronze/erp_payments")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrCorruptData)
}

func TestSQLiteRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lake.db")
	store, err := newSQLite(path)
	require.NoError(t, err)

	in := sampleTable(t)
	require.NoError(t, store.Store(ctx, in, "bronze/erp_payments"))

	out, err := store.Load(ctx, "bronze/erp_payments")
	require.NoError(t, err)
	assert.Equal(t, in.Rows, out.Rows)

	_, err = store.Load(ctx, "bronze/missing")
	assert.True(t, storage.IsNotFound(err))

	// Upsert replaces the previous payload.
	replacement := table.New("bronze/erp_payments",
		table.Column{Name: "payment_id", Type: table.String},
	)
	require.NoError(t, replacement.Append([]any{"pay9"}))
	require.NoError(t, store.Store(ctx, replacement, "bronze/erp_payments"))

	out, err = store.Load(ctx, "bronze/erp_payments")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
	assert.Equal(t, "pay9", out.Value(0, "payment_id"))
}

// flakyStore fails a fixed number of times before delegating to Mem.
type flakyStore struct {
	mem      *Mem
	failures int
	err      error
	calls    int
}

func (f *flakyStore) Load(
	ctx context.Context, name string,
) (*table.Table, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return f.mem.Load(ctx, name)
}

func (f *flakyStore) Store(
	ctx context.Context, t *table.Table, name string,
) error {
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	return f.mem.Store(ctx, t, name)
}

func TestRetryTransient(t *testing.T) {
	ctx := context.Background()
	mem := NewMem()
	require.NoError(t, mem.Store(ctx, sampleTable(t), "bronze/erp_payments"))

	flaky := &flakyStore{
		mem:      mem,
		failures: 2,
		err:      TransientError("bronze/erp_payments", os.ErrDeadlineExceeded),
	}
	store := newRetry(flaky, 3, 30)

	out, err := store.Load(ctx, "bronze/erp_payments")
	require.NoError(t, err, "third attempt succeeds")
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, 3, flaky.calls)
}

func TestRetryExhausted(t *testing.T) {
	flaky := &flakyStore{
		mem:      NewMem(),
		failures: 99,
		err:      TransientError("bronze/x", os.ErrDeadlineExceeded),
	}
	store := newRetry(flaky, 2, 30)

	_, err := store.Load(context.Background(), "bronze/x")
	require.Error(t, err)
	assert.True(t, storage.IsTransient(err))
	assert.Equal(t, 2, flaky.calls)
}

func TestRetrySkipsNonTransient(t *testing.T) {
	flaky := &flakyStore{
		mem:      NewMem(),
		failures: 99,
		err:      NotFoundError("bronze/x"),
	}
	store := newRetry(flaky, 3, 30)

	_, err := store.Load(context.Background(), "bronze/x")
	require.Error(t, err)
	assert.True(t, storage.IsNotFound(err))
	assert.Equal(t, 1, flaky.calls, "not-found never retries")
}

func TestMemFailureInjection(t *testing.T) {
	ctx := context.Background()
	mem := NewMem()
	mem.FailStore = map[string]error{
		"silver/erp_claims": DeniedError("silver/erp_claims", os.ErrPermission),
	}

	err := mem.Store(ctx, sampleTable(t), "silver/erp_claims")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrPermissionDenied)
	assert.Nil(t, mem.Bytes("silver/erp_claims"))
}

func TestEncodingIsDeterministic(t *testing.T) {
	ctx := context.Background()
	mem := NewMem()
	in := sampleTable(t)

	require.NoError(t, mem.Store(ctx, in, "a"))
	first := append([]byte{}, mem.Bytes("a")...)

	require.NoError(t, mem.Store(ctx, in, "a"))
	assert.Equal(t, first, mem.Bytes("a"),
		"same table encodes to the same bytes")
}
