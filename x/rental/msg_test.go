package rental

import (
	"bytes"
	"testing"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/weavetest"
	"github.com/iov-one/rentbook/weavetest/assert"
)

func TestMessageValidation(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	meta := &rentbook.Metadata{Schema: 1}

	cases := map[string]struct {
		msg       rentbook.Msg
		wantErrs  map[string]*errors.Error
		wantValid bool
	}{
		"initialize with an allocated id": {
			msg:       &InitializeMsg{Metadata: meta, Owner: addr, RentPricePerDay: 1},
			wantValid: true,
		},
		"initialize with a too long id": {
			msg: &InitializeMsg{Metadata: meta, RecordID: bytes.Repeat([]byte("x"), 65), Owner: addr},
			wantErrs: map[string]*errors.Error{
				"RecordID": errors.ErrInput,
			},
		},
		"initialize without metadata and owner": {
			msg: &InitializeMsg{RecordID: []byte("a")},
			wantErrs: map[string]*errors.Error{
				"Metadata": errors.ErrMetadata,
				"Owner":    errors.ErrInput,
			},
		},
		"rent without a renter": {
			msg:       &RentMsg{Metadata: meta, RecordID: []byte("a"), Days: 1},
			wantValid: true,
		},
		"rent with an invalid renter": {
			msg: &RentMsg{Metadata: meta, RecordID: []byte("a"), Renter: rentbook.Address("x"), Days: 1},
			wantErrs: map[string]*errors.Error{
				"Renter": errors.ErrInput,
			},
		},
		"rent for zero days": {
			msg: &RentMsg{Metadata: meta, Days: 0},
			wantErrs: map[string]*errors.Error{
				"RecordID": errors.ErrEmpty,
				"Days":     errors.ErrInput,
			},
		},
		"return": {
			msg:       &ReturnMsg{Metadata: meta, RecordID: []byte("a"), Owner: addr, Renter: addr},
			wantValid: true,
		},
		"return without a renter": {
			msg: &ReturnMsg{Metadata: meta, RecordID: []byte("a"), Owner: addr},
			wantErrs: map[string]*errors.Error{
				"Renter": errors.ErrInput,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantValid {
				assert.Nil(t, err)
				return
			}
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestMessageSerialization(t *testing.T) {
	msg := &RentMsg{
		Metadata: &rentbook.Metadata{Schema: 1},
		RecordID: []byte("book"),
		Renter:   weavetest.NewCondition().Address(),
		Days:     4,
	}
	raw, err := msg.Marshal()
	assert.Nil(t, err)

	var got RentMsg
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, msg, &got)
}
