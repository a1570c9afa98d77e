package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfmartin/mail-harvester/internal/core"
)

func TestMemoryStoreMerge(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Merge(ctx, []*core.EmailRecord{testRecord("b", 200)}))
	require.NoError(t, s.Merge(ctx, []*core.EmailRecord{testRecord("a", 100), testRecord("b", 200)}))

	records, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
}

func TestMemoryStoreAllReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Merge(ctx, []*core.EmailRecord{testRecord("a", 100)}))

	first, err := s.All(ctx)
	require.NoError(t, err)
	first[0] = testRecord("z", 999)

	second, err := s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", second[0].ID)
}

func TestMemoryStoreConcurrentMerges(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Merge(ctx, []*core.EmailRecord{testRecord("a", 100), testRecord("b", 200)})
		}()
	}
	wg.Wait()

	records, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
