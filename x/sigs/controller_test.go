package sigs

import (
	"testing"

	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/migration"
	"github.com/iov-one/rentbook/store"
	"github.com/iov-one/rentbook/weavetest"
	"github.com/iov-one/rentbook/weavetest/assert"
)

func TestVerifySignature(t *testing.T) {
	const chainID = "test-chain-1"

	db := store.MemStore()
	migration.MustInitPkg(db, "sigs")

	pub, priv := weavetest.NewKey()
	addr := KeyCondition(pub).Address()

	tx := newStdTx([]byte("rent a book"))
	sig0, err := SignTx(priv, tx, chainID, 0)
	assert.Nil(t, err)

	nonce, err := NextNonce(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), nonce)

	// Signature over other chain is not valid here.
	_, err = VerifySignature(db, sig0, []byte("rent a book"), "other-chain")
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// Signature over other bytes is not valid.
	_, err = VerifySignature(db, sig0, []byte("rent two books"), chainID)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	cond, err := VerifySignature(db, sig0, []byte("rent a book"), chainID)
	assert.Nil(t, err)
	assert.Equal(t, KeyCondition(pub), cond)

	nonce, err = NextNonce(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), nonce)

	// Replay is rejected.
	_, err = VerifySignature(db, sig0, []byte("rent a book"), chainID)
	assert.IsErr(t, ErrInvalidSequence, err)

	sig1, err := SignTx(priv, tx, chainID, 1)
	assert.Nil(t, err)
	tx.Signatures = []*StdSignature{sig1}
	signers, err := VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(signers))
	assert.Equal(t, addr, signers[0].Address())
}

func TestStdSignatureValidate(t *testing.T) {
	pub, _ := weavetest.NewKey()

	cases := map[string]struct {
		sig     *StdSignature
		wantErr *errors.Error
	}{
		"valid": {
			sig: &StdSignature{Pubkey: pub, Signature: []byte("sig")},
		},
		"negative sequence": {
			sig:     &StdSignature{Sequence: -1, Pubkey: pub, Signature: []byte("sig")},
			wantErr: ErrInvalidSequence,
		},
		"missing pubkey": {
			sig:     &StdSignature{Signature: []byte("sig")},
			wantErr: errors.ErrUnauthorized,
		},
		"short pubkey": {
			sig:     &StdSignature{Pubkey: pub[:10], Signature: []byte("sig")},
			wantErr: errors.ErrUnauthorized,
		},
		"missing signature": {
			sig:     &StdSignature{Pubkey: pub},
			wantErr: errors.ErrUnauthorized,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.sig.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestBuildSignBytes(t *testing.T) {
	_, err := BuildSignBytes([]byte("data"), "bad", 1)
	assert.IsErr(t, errors.ErrInput, err)

	_, err = BuildSignBytes([]byte("data"), "test-chain-1", -1)
	assert.IsErr(t, ErrInvalidSequence, err)

	a, err := BuildSignBytes([]byte("data"), "test-chain-1", 1)
	assert.Nil(t, err)
	b, err := BuildSignBytes([]byte("data"), "test-chain-1", 2)
	assert.Nil(t, err)
	if string(a) == string(b) {
		t.Fatal("sequence must change sign bytes")
	}
	assert.Equal(t, 64, len(a))
}

func TestCheckAndIncrementSequence(t *testing.T) {
	u := &UserData{Sequence: 7}
	assert.IsErr(t, ErrInvalidSequence, u.CheckAndIncrementSequence(6))
	assert.Nil(t, u.CheckAndIncrementSequence(7))
	assert.Equal(t, int64(8), u.Sequence)

	u = &UserData{Sequence: (1 << 53) - 1}
	assert.IsErr(t, errors.ErrOverflow, u.CheckAndIncrementSequence((1<<53)-1))
}
