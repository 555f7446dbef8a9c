package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/lock"
)

type record struct {
	Name string `json:"name"`
}

func newTestStore(t *testing.T) *Store[record] {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	return NewStore[record](path, lock.NewMemoryLocker(), zerolog.Nop())
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	items, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.Save(ctx, []record{{Name: "a"}, {Name: "b"}})
	require.NoError(t, err)

	items, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []record{{Name: "a"}, {Name: "b"}}, items)
}

func TestStore_SaveWritesIndentedArray(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Save(ctx, []record{{Name: "a"}}))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.Equal(t, "[\n    {\n        \"name\": \"a\"\n    }\n]", string(data))
}

func TestStore_SaveNilAsEmptyArray(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Save(ctx, nil))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestStore_LoadMalformedDocument(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	_, err := s.Load(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode document")
}

func TestStore_UpdateMutatesUnderLock(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.Update(ctx, func(items []record) ([]record, error) {
		return append(items, record{Name: "x"}), nil
	})
	require.NoError(t, err)

	items, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestStore_UpdateErrorAbortsWrite(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Save(ctx, []record{{Name: "keep"}}))

	wantErr := os.ErrInvalid
	err := s.Update(ctx, func(items []record) ([]record, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)

	items, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []record{{Name: "keep"}}, items)
}
