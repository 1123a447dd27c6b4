package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/x/cash"
	"github.com/iov-one/rentbook/x/rental"
	"github.com/iov-one/rentbook/x/sigs"
)

// Tx is the transaction format of rentald. Exactly one of the message
// fields must be set.
type Tx struct {
	Signatures    []*sigs.StdSignature  `protobuf:"bytes,1,rep,name=signatures" json:"signatures,omitempty"`
	SendMsg       *cash.SendMsg         `protobuf:"bytes,2,opt,name=send_msg" json:"send_msg,omitempty"`
	InitializeMsg *rental.InitializeMsg `protobuf:"bytes,3,opt,name=initialize_msg" json:"initialize_msg,omitempty"`
	RentMsg       *rental.RentMsg       `protobuf:"bytes,4,opt,name=rent_msg" json:"rent_msg,omitempty"`
	ReturnMsg     *rental.ReturnMsg     `protobuf:"bytes,5,opt,name=return_msg" json:"return_msg,omitempty"`
}

var _ rentbook.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (rentbook.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

// NewTx wraps a message into a transaction without signatures.
func NewTx(msg rentbook.Msg) (*Tx, error) {
	var tx Tx
	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.SendMsg = m
	case *rental.InitializeMsg:
		tx.InitializeMsg = m
	case *rental.RentMsg:
		tx.RentMsg = m
	case *rental.ReturnMsg:
		tx.ReturnMsg = m
	default:
		return nil, errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return &tx, nil
}

// GetMsg returns the only message carried by this transaction.
func (tx *Tx) GetMsg() (rentbook.Msg, error) {
	var msgs []rentbook.Msg
	if tx.SendMsg != nil {
		msgs = append(msgs, tx.SendMsg)
	}
	if tx.InitializeMsg != nil {
		msgs = append(msgs, tx.InitializeMsg)
	}
	if tx.RentMsg != nil {
		msgs = append(msgs, tx.RentMsg)
	}
	if tx.ReturnMsg != nil {
		msgs = append(msgs, tx.ReturnMsg)
	}
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages in a single transaction", len(msgs))
	}
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txPB)(tx))
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*txPB)(tx))
}

type txPB Tx

func (tx *txPB) Reset()         { *tx = txPB{} }
func (tx *txPB) String() string { return proto.CompactTextString(tx) }
func (*txPB) ProtoMessage()     {}
