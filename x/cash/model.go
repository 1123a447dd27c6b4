package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/migration"
	"github.com/iov-one/rentbook/orm"
)

func init() {
	migration.MustRegister(1, &Wallet{}, migration.NoModification)
}

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the balance of a single address.
type Wallet struct {
	Metadata *rentbook.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Balance  uint64             `protobuf:"varint,2,opt,name=balance,proto3" json:"balance,omitempty"`
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) GetMetadata() *rentbook.Metadata {
	if w == nil {
		return nil
	}
	return w.Metadata
}

func (w *Wallet) Validate() error {
	return errors.Field("Metadata", w.Metadata.Validate(), "")
}

func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{
		Metadata: w.Metadata.Copy(),
		Balance:  w.Balance,
	}
}

func (w *Wallet) Marshal() ([]byte, error) {
	return proto.Marshal((*walletPB)(w))
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*walletPB)(w))
}

type walletPB Wallet

func (w *walletPB) Reset()         { *w = walletPB{} }
func (w *walletPB) String() string { return proto.CompactTextString(w) }
func (*walletPB) ProtoMessage()    {}

// NewBucket returns a bucket storing wallets under the holder address.
func NewBucket() orm.ModelBucket {
	b := orm.NewModelBucket(BucketName, &Wallet{})
	return migration.NewModelBucket("cash", b)
}
