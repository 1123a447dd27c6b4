package rentbook_test

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	addr := rentbook.NewCondition("rental", "record", []byte("ABCD123456LHB")).Address()
	assert.Len(t, addr, rentbook.AddressLength)
	assert.Equal(t, strings.ToUpper(hex.EncodeToString(addr)), addr.String())
	assert.Equal(t, "(nil)", rentbook.Address(nil).String())

	cond := rentbook.NewCondition("sigs", "ed25519", []byte{0xAB, 0xCD})
	assert.Equal(t, "sigs/ed25519/ABCD", cond.String())
	assert.NotEqual(t, fmt.Sprintf("%X", []byte(cond)), cond.String())
}

func TestAddressUnmarshalJSON(t *testing.T) {
	full := rentbook.NewCondition("foo", "bar", []byte("conditiondata")).Address()
	b32, err := full.Bech32()
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr rentbook.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf(`"%s"`, hex.EncodeToString(full)),
			wantAddr: full,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%s"`, hex.EncodeToString(full)),
			wantAddr: full,
		},
		"hex of a wrong length": {
			json:    `"hex:6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: full,
		},
		"bech32 decoding": {
			json:     fmt.Sprintf(`"bech32:%s"`, b32),
			wantAddr: full,
		},
		"invalid bech32": {
			json:    `"bech32:rent1qqqq"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a rentbook.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestAddressBech32(t *testing.T) {
	addr := rentbook.NewCondition("rental", "record", []byte("book")).Address()
	enc, err := addr.Bech32()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, rentbook.Bech32Prefix+"1"))

	got, err := rentbook.ParseBech32(enc)
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition rentbook.Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: rentbook.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"zero address": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got rentbook.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantCondition) {
				t.Fatalf("expected %q but got condition: %q", tc.wantCondition, got)
			}
		})
	}
}

func TestConditionMarshalJSON(t *testing.T) {
	cases := map[string]struct {
		source   rentbook.Condition
		wantJSON string
	}{
		"cond encoding": {
			source:   rentbook.NewCondition("foo", "bar", []byte("conditiondata")),
			wantJSON: `"foo/bar/636F6E646974696F6E64617461"`,
		},
		"nil encoding": {
			source:   nil,
			wantJSON: `""`,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := json.Marshal(tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.wantJSON, string(got))
		})
	}
}

func TestConditionValidate(t *testing.T) {
	assert.NoError(t, rentbook.NewCondition("rental", "record", []byte{0}).Validate())
	assert.Error(t, rentbook.NewCondition("r", "record", []byte{0}).Validate())
	assert.Error(t, rentbook.Condition("no-slashes").Validate())
}
