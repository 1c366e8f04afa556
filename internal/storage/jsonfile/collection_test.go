package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func tempCollection(t *testing.T) *Collection[rec] {
	t.Helper()
	return NewCollection[rec](filepath.Join(t.TempDir(), "data", "records.json"))
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	c := tempCollection(t)
	recs, err := c.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, recs)
	require.Empty(t, recs)
}

func TestLoad_BlankFileIsEmpty(t *testing.T) {
	c := tempCollection(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(c.Path()), 0o755))
	require.NoError(t, os.WriteFile(c.Path(), []byte("  \n"), 0o644))

	recs, err := c.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestLoad_CorruptFileFails(t *testing.T) {
	c := tempCollection(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(c.Path()), 0o755))
	require.NoError(t, os.WriteFile(c.Path(), []byte("{not json"), 0o644))

	_, err := c.Load(context.Background())
	require.Error(t, err)
}

func TestAppendAndReplace(t *testing.T) {
	ctx := context.Background()
	c := tempCollection(t)

	require.NoError(t, c.Append(ctx, rec{ID: "1", Name: "a"}))
	require.NoError(t, c.Append(ctx, rec{ID: "2", Name: "b"}))

	recs, err := c.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []rec{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}, recs)

	require.NoError(t, c.Replace(ctx, []rec{{ID: "3", Name: "c"}}))
	recs, err = c.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []rec{{ID: "3", Name: "c"}}, recs)

	require.NoError(t, c.Replace(ctx, nil))
	data, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestMutate_ErrorLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	c := tempCollection(t)
	require.NoError(t, c.Append(ctx, rec{ID: "1"}))

	boom := errors.New("boom")
	err := c.Mutate(ctx, func(recs []rec) ([]rec, error) {
		return append(recs, rec{ID: "2"}), boom
	})
	require.ErrorIs(t, err, boom)

	recs, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestInit_DoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	c := tempCollection(t)

	require.NoError(t, c.Init(ctx))
	data, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	require.NoError(t, c.Append(ctx, rec{ID: "1"}))
	require.NoError(t, c.Init(ctx))
	recs, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestConcurrentAppendsAreSerialised(t *testing.T) {
	ctx := context.Background()
	c := tempCollection(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, c.Append(ctx, rec{ID: fmt.Sprint(i)}))
		}(i)
	}
	wg.Wait()

	recs, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, recs, n)

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(c.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := tempCollection(t)
	require.ErrorIs(t, c.Append(ctx, rec{ID: "1"}), context.Canceled)
	_, err := c.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
