package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/migration"
	"github.com/iov-one/rentbook/orm"
	"golang.org/x/crypto/ed25519"
)

func init() {
	migration.MustRegister(1, &UserData{}, migration.NoModification)
}

// BucketName is where we store the accounts
const BucketName = "sigs"

// UserData is the state of a signer: its public key and the sequence the
// next signature must use.
type UserData struct {
	Metadata *rentbook.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Pubkey   []byte             `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64              `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) GetMetadata() *rentbook.Metadata {
	return u.Metadata
}

func (u *UserData) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", u.Metadata.Validate())
	if len(u.Pubkey) != ed25519.PublicKeySize {
		errs = errors.AppendField(errs, "Pubkey", errors.ErrInput)
	}
	if u.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	return errs
}

func (u *UserData) Copy() orm.CloneableData {
	return &UserData{
		Metadata: u.Metadata.Copy(),
		Sequence: u.Sequence,
		Pubkey:   append([]byte(nil), u.Pubkey...),
	}
}

// CheckAndIncrementSequence increments the sequence if it is equal to the
// expected value. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}

	next := u.Sequence + 1

	// The greatest nonce value supported by javascript clients is
	// 2^53 - 1.
	const maxSequenceValue = (1 << 53) - 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

func (u *UserData) Marshal() ([]byte, error) {
	return proto.Marshal((*userDataPB)(u))
}

func (u *UserData) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*userDataPB)(u))
}

type userDataPB UserData

func (u *userDataPB) Reset()         { *u = userDataPB{} }
func (u *userDataPB) String() string { return proto.CompactTextString(u) }
func (*userDataPB) ProtoMessage()    {}

// KeyCondition returns the condition of an ed25519 public key.
func KeyCondition(pubkey []byte) rentbook.Condition {
	return rentbook.NewCondition("sigs", "ed25519", pubkey)
}

// NewBucket creates the proper bucket for this extension. Users are stored
// under the address of their key condition.
func NewBucket() orm.ModelBucket {
	b := orm.NewModelBucket(BucketName, &UserData{})
	return migration.NewModelBucket("sigs", b)
}

// RegisterQuery will register this bucket as "/auth"
func RegisterQuery(qr rentbook.QueryRouter) {
	NewBucket().Register("auth", qr)
}
