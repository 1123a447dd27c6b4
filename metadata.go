package rentbook

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/rentbook/errors"
)

// Metadata is carried by every persisted model and every message. Schema
// is the version of the layout the data was written with.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

// Validate returns an error if the schema version is not set.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be at least 1")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when implementing
// orm.CloneableData interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}

func (m *Metadata) GetSchema() uint32 {
	if m == nil {
		return 0
	}
	return m.Schema
}

func (m *Metadata) Marshal() ([]byte, error) {
	return proto.Marshal((*metadataPB)(m))
}

func (m *Metadata) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*metadataPB)(m))
}

// metadataPB hides the Marshal/Unmarshal methods so that the reflection
// based protobuf codec can be used.
type metadataPB Metadata

func (m *metadataPB) Reset()         { *m = metadataPB{} }
func (m *metadataPB) String() string { return proto.CompactTextString(m) }
func (*metadataPB) ProtoMessage()    {}
