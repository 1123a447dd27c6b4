package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/rentbook/errors"
)

// counter is a minimal model used by the tests of this package.
type counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

var _ Model = (*counter)(nil)

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInput, "negative count")
	}
	return nil
}

func (c *counter) Copy() CloneableData {
	cpy := *c
	return &cpy
}

func (c *counter) Marshal() ([]byte, error) {
	return proto.Marshal((*counterPB)(c))
}

func (c *counter) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*counterPB)(c))
}

type counterPB counter

func (c *counterPB) Reset()         { *c = counterPB{} }
func (c *counterPB) String() string { return proto.CompactTextString(c) }
func (*counterPB) ProtoMessage()    {}

// other is a model of a different type, used to test type checks.
type other struct {
	counter
}

func (o *other) Copy() CloneableData {
	cpy := *o
	return &cpy
}
