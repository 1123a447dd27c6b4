package orm

import (
	"github.com/iov-one/rentbook"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr rentbook.Iterator) []rentbook.Model {
	defer itr.Close()

	var res []rentbook.Model
	for ; itr.Valid(); itr.Next() {
		res = append(res, rentbook.Model{
			Key:   itr.Key(),
			Value: itr.Value(),
		})
	}
	return res
}

func queryPrefix(db rentbook.ReadOnlyKVStore, prefix []byte) ([]rentbook.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr), nil
}

// prefixRange turns a prefix into (start, end) to create
// and iterator
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}
