package migration

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/orm"
)

// MyModel is a schema versioned entity used by the tests.
type MyModel struct {
	Metadata *rentbook.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Content  string             `protobuf:"bytes,2,opt,name=content,proto3" json:"content,omitempty"`
}

var _ orm.Model = (*MyModel)(nil)
var _ rentbook.Msg = (*MyModel)(nil)

func (m *MyModel) GetMetadata() *rentbook.Metadata { return m.Metadata }

func (m *MyModel) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Content == "invalid" {
		return errors.Wrap(errors.ErrInput, "content")
	}
	return nil
}

func (m *MyModel) Copy() orm.CloneableData {
	return &MyModel{Metadata: m.Metadata.Copy(), Content: m.Content}
}

func (m *MyModel) Path() string { return "migration/mymodel" }

func (m *MyModel) Marshal() ([]byte, error) {
	return proto.Marshal((*myModelPB)(m))
}

func (m *MyModel) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*myModelPB)(m))
}

type myModelPB MyModel

func (m *myModelPB) Reset()         { *m = myModelPB{} }
func (m *myModelPB) String() string { return proto.CompactTextString(m) }
func (*myModelPB) ProtoMessage()    {}
