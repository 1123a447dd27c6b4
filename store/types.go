package store

import "github.com/iov-one/rentbook"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = rentbook.ReadOnlyKVStore
	SetDeleter       = rentbook.SetDeleter
	KVStore          = rentbook.KVStore
	Batch            = rentbook.Batch
	Iterator         = rentbook.Iterator
	CacheableKVStore = rentbook.CacheableKVStore
	KVCacheWrap      = rentbook.KVCacheWrap
	CommitKVStore    = rentbook.CommitKVStore
	CommitID         = rentbook.CommitID
	Model            = rentbook.Model
)
