package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGet(t testing.TB, kv ReadOnlyKVStore, key []byte) []byte {
	t.Helper()
	v, err := kv.Get(key)
	require.NoError(t, err)
	return v
}

func mustHas(t testing.TB, kv ReadOnlyKVStore, key []byte) bool {
	t.Helper()
	ok, err := kv.Has(key)
	require.NoError(t, err)
	return ok
}

func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}
	base := devnull.CacheWrap()

	k, v := []byte("book"), []byte("free")
	assert.Nil(t, mustGet(t, base, k))
	assert.False(t, mustHas(t, base, k))
	require.NoError(t, base.Set(k, v))
	assert.Equal(t, v, mustGet(t, base, k))
	assert.True(t, mustHas(t, base, k))

	// a nested layer sees the base data
	cache := base.CacheWrap()
	assert.Equal(t, v, mustGet(t, cache, k))

	// writing more data is only visible in the cache
	k2, v2 := []byte("wallet"), []byte("100")
	require.NoError(t, cache.Set(k2, v2))
	assert.Equal(t, v2, mustGet(t, cache, k2))
	assert.Nil(t, mustGet(t, base, k2))
	assert.False(t, mustHas(t, base, k2))

	require.NoError(t, cache.Write())
	assert.Equal(t, v2, mustGet(t, base, k2))

	// a discarded layer leaves no trace
	k3, v3 := []byte("escrow"), []byte("300")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	require.NoError(t, c2.Write())
	assert.Nil(t, mustGet(t, base, k3))

	// deletes are propagated on write
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assert.False(t, mustHas(t, c3, k))
	assert.True(t, mustHas(t, base, k))
	require.NoError(t, c3.Write())
	assert.Nil(t, mustGet(t, base, k))
	assert.Equal(t, v2, mustGet(t, base, k2))
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache-b")))
	require.NoError(t, cache.Delete([]byte("c")))
	require.NoError(t, cache.Set([]byte("cc"), []byte("cache-cc")))
	require.NoError(t, cache.Delete([]byte("e")))

	cases := map[string]struct {
		start, end []byte
		want       []Model
	}{
		"full range": {
			want: []Model{
				{Key: []byte("a"), Value: []byte("base-a")},
				{Key: []byte("b"), Value: []byte("cache-b")},
				{Key: []byte("cc"), Value: []byte("cache-cc")},
				{Key: []byte("d"), Value: []byte("base-d")},
			},
		},
		"bounded range": {
			start: []byte("b"),
			end:   []byte("d"),
			want: []Model{
				{Key: []byte("b"), Value: []byte("cache-b")},
				{Key: []byte("cc"), Value: []byte("cache-cc")},
			},
		},
		"open end": {
			start: []byte("c"),
			want: []Model{
				{Key: []byte("cc"), Value: []byte("cache-cc")},
				{Key: []byte("d"), Value: []byte("base-d")},
			},
		},
		"open start": {
			end: []byte("b"),
			want: []Model{
				{Key: []byte("a"), Value: []byte("base-a")},
			},
		},
		"only deleted items": {
			start: []byte("e"),
			want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			it, err := cache.Iterator(tc.start, tc.end)
			require.NoError(t, err)
			defer it.Close()

			var got []Model
			for ; it.Valid(); it.Next() {
				got = append(got, Model{Key: it.Key(), Value: it.Value()})
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNonAtomicBatch(t *testing.T) {
	db := MemStore()
	b := db.NewBatch()
	require.NoError(t, b.Set([]byte("one"), []byte("1")))
	require.NoError(t, b.Delete([]byte("one")))
	require.NoError(t, b.Set([]byte("two"), []byte("2")))

	assert.False(t, mustHas(t, db, []byte("two")))
	require.NoError(t, b.Write())
	assert.False(t, mustHas(t, db, []byte("one")))
	assert.Equal(t, []byte("2"), mustGet(t, db, []byte("two")))
}
