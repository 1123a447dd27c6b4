package orm

import (
	"reflect"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
)

var _ Object = (*SimpleObj)(nil)

// SimpleObj is the default Object implementation: a key and the model
// stored under it.
type SimpleObj struct {
	key   []byte
	value Model
}

// NewSimpleObj returns an object holding value under key. A nil key is
// allowed for templates passed to NewBucket.
func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte {
	return o.key
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

func (o SimpleObj) Value() rentbook.Persistent {
	return o.value
}

// Validate requires both key and value and validates the value.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Field("Value", errors.ErrEmpty, "missing value")
	default:
		return errors.Field("Value", o.value.Validate(), "invalid value")
	}
}

// Clone returns an object with the same key and a zero value of the same
// model type, ready to be unmarshaled into.
func (o *SimpleObj) Clone() Object {
	zero := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	var key []byte
	if len(o.key) != 0 {
		key = append(key, o.key...)
	}
	return &SimpleObj{key: key, value: zero}
}
