package rental

import (
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/orm"
)

// Store persists records.
type Store interface {
	// Load returns the record stored under id or ErrNotFound.
	Load(db rentbook.ReadOnlyKVStore, id []byte) (*Record, error)
	// Create stores a new record. It fails with ErrAlreadyInitialized
	// if a record with the same id exists.
	Create(db rentbook.KVStore, id []byte, r *Record) error
	// Save overwrites the record stored under id.
	Save(db rentbook.KVStore, id []byte, r *Record) error
}

// NewStore returns a Store backed by the record bucket.
func NewStore() Store {
	return &bucketStore{b: NewRecordBucket()}
}

type bucketStore struct {
	b orm.ModelBucket
}

func (s *bucketStore) Load(db rentbook.ReadOnlyKVStore, id []byte) (*Record, error) {
	var r Record
	if err := s.b.One(db, id, &r); err != nil {
		return nil, errors.Wrapf(err, "record %X", id)
	}
	return &r, nil
}

func (s *bucketStore) Create(db rentbook.KVStore, id []byte, r *Record) error {
	err := s.b.Create(db, id, r)
	if errors.ErrDuplicate.Is(err) {
		return errors.Wrapf(ErrAlreadyInitialized, "record %X", id)
	}
	return err
}

func (s *bucketStore) Save(db rentbook.KVStore, id []byte, r *Record) error {
	return s.b.Put(db, id, r)
}
