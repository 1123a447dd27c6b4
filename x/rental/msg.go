package rental

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/migration"
)

func init() {
	migration.MustRegister(1, &InitializeMsg{}, migration.NoModification)
	migration.MustRegister(1, &RentMsg{}, migration.NoModification)
	migration.MustRegister(1, &ReturnMsg{}, migration.NoModification)
}

const (
	pathInitializeMsg = "rental/initialize"
	pathRentMsg       = "rental/rent"
	pathReturnMsg     = "rental/return"

	maxRecordIDLength = 64
)

// InitializeMsg creates a new free record owned by Owner. When RecordID is
// empty an id is allocated.
type InitializeMsg struct {
	Metadata        *rentbook.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	RecordID        []byte             `protobuf:"bytes,2,opt,name=record_id,proto3" json:"record_id,omitempty"`
	Owner           rentbook.Address   `protobuf:"bytes,3,opt,name=owner,proto3" json:"owner,omitempty"`
	RentPricePerDay uint64             `protobuf:"varint,4,opt,name=rent_price_per_day,proto3" json:"rent_price_per_day,omitempty"`
}

var _ rentbook.Msg = (*InitializeMsg)(nil)

func (InitializeMsg) Path() string {
	return pathInitializeMsg
}

func (m *InitializeMsg) GetMetadata() *rentbook.Metadata {
	return m.Metadata
}

func (m *InitializeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "RecordID", validateRecordID(m.RecordID, true))
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	return errs
}

func (m *InitializeMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*initializeMsgPB)(m))
}

func (m *InitializeMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*initializeMsgPB)(m))
}

type initializeMsgPB InitializeMsg

func (m *initializeMsgPB) Reset()         { *m = initializeMsgPB{} }
func (m *initializeMsgPB) String() string { return proto.CompactTextString(m) }
func (*initializeMsgPB) ProtoMessage()    {}

// RentMsg rents a free record for Days days. Renter defaults to the main
// signer of the transaction.
type RentMsg struct {
	Metadata *rentbook.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	RecordID []byte             `protobuf:"bytes,2,opt,name=record_id,proto3" json:"record_id,omitempty"`
	Renter   rentbook.Address   `protobuf:"bytes,3,opt,name=renter,proto3" json:"renter,omitempty"`
	Days     uint64             `protobuf:"varint,4,opt,name=days,proto3" json:"days,omitempty"`
}

var _ rentbook.Msg = (*RentMsg)(nil)

func (RentMsg) Path() string {
	return pathRentMsg
}

func (m *RentMsg) GetMetadata() *rentbook.Metadata {
	return m.Metadata
}

func (m *RentMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "RecordID", validateRecordID(m.RecordID, false))
	if m.Renter != nil {
		errs = errors.AppendField(errs, "Renter", m.Renter.Validate())
	}
	if m.Days == 0 {
		errs = errors.AppendField(errs, "Days", errors.Wrap(errors.ErrInput, "must be greater than zero"))
	}
	return errs
}

func (m *RentMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*rentMsgPB)(m))
}

func (m *RentMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*rentMsgPB)(m))
}

type rentMsgPB RentMsg

func (m *rentMsgPB) Reset()         { *m = rentMsgPB{} }
func (m *rentMsgPB) String() string { return proto.CompactTextString(m) }
func (*rentMsgPB) ProtoMessage()    {}

// ReturnMsg ends the rental of a record. Both the owner and the renter
// must sign it.
type ReturnMsg struct {
	Metadata *rentbook.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	RecordID []byte             `protobuf:"bytes,2,opt,name=record_id,proto3" json:"record_id,omitempty"`
	Owner    rentbook.Address   `protobuf:"bytes,3,opt,name=owner,proto3" json:"owner,omitempty"`
	Renter   rentbook.Address   `protobuf:"bytes,4,opt,name=renter,proto3" json:"renter,omitempty"`
}

var _ rentbook.Msg = (*ReturnMsg)(nil)

func (ReturnMsg) Path() string {
	return pathReturnMsg
}

func (m *ReturnMsg) GetMetadata() *rentbook.Metadata {
	return m.Metadata
}

func (m *ReturnMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "RecordID", validateRecordID(m.RecordID, false))
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Renter", m.Renter.Validate())
	return errs
}

func (m *ReturnMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*returnMsgPB)(m))
}

func (m *ReturnMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*returnMsgPB)(m))
}

type returnMsgPB ReturnMsg

func (m *returnMsgPB) Reset()         { *m = returnMsgPB{} }
func (m *returnMsgPB) String() string { return proto.CompactTextString(m) }
func (*returnMsgPB) ProtoMessage()    {}

func validateRecordID(id []byte, allowEmpty bool) error {
	switch {
	case len(id) == 0 && !allowEmpty:
		return errors.ErrEmpty
	case len(id) > maxRecordIDLength:
		return errors.Wrapf(errors.ErrInput, "longer than %d bytes", maxRecordIDLength)
	}
	return nil
}
