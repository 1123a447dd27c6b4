package app

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/commands"
	"github.com/iov-one/rentbook/x/cash"
	"github.com/iov-one/rentbook/x/rental"
	"github.com/iov-one/rentbook/x/sigs"
	"golang.org/x/crypto/ed25519"
)

// we fix the private keys here for deterministic output with the same encoding
// these are not secure at all, but the only point is to check the format,
// which is easier when everything is reproduceable.
var (
	owner  = makePrivKey("1234567890")
	renter = makePrivKey("F00BA411")
)

// makePrivKey repeats the string as long as needed to get 64 hex digits,
// then uses it as the seed of an ed25519 key.
func makePrivKey(seed string) ed25519.PrivateKey {
	rep := 64/len(seed) + 1
	in := strings.Repeat(seed, rep)[:64]
	bin, err := hex.DecodeString(in)
	if err != nil {
		panic(err)
	}
	return ed25519.NewKeyFromSeed(bin)
}

func keyAddress(key ed25519.PrivateKey) rentbook.Address {
	return sigs.KeyCondition(key.Public().(ed25519.PublicKey)).Address()
}

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	ownerAddr := keyAddress(owner)
	renterAddr := keyAddress(renter)
	recordID := []byte("book-1")

	wallet := &cash.Wallet{
		Metadata: &rentbook.Metadata{Schema: 1},
		Balance:  50000,
	}

	record := rental.NewRecord(ownerAddr, 100)
	record.Rental = &rental.Rental{
		Renter:    renterAddr,
		Duration:  3,
		StartTime: 1500000000,
	}
	record.Escrowed = 300

	initMsg := &rental.InitializeMsg{
		Metadata:        &rentbook.Metadata{Schema: 1},
		RecordID:        recordID,
		Owner:           ownerAddr,
		RentPricePerDay: 100,
	}
	rentMsg := &rental.RentMsg{
		Metadata: &rentbook.Metadata{Schema: 1},
		RecordID: recordID,
		Renter:   renterAddr,
		Days:     3,
	}
	returnMsg := &rental.ReturnMsg{
		Metadata: &rentbook.Metadata{Schema: 1},
		RecordID: recordID,
		Owner:    ownerAddr,
		Renter:   renterAddr,
	}
	sendMsg := &cash.SendMsg{
		Metadata:    &rentbook.Metadata{Schema: 1},
		Source:      ownerAddr,
		Destination: renterAddr,
		Amount:      1000,
		Memo:        "Test payment",
	}

	rentTx := &Tx{RentMsg: rentMsg}
	sig, err := sigs.SignTx(renter, rentTx, "test-123", 0)
	if err != nil {
		panic(err)
	}
	rentTx.Signatures = []*sigs.StdSignature{sig}

	user := &sigs.UserData{
		Metadata: &rentbook.Metadata{Schema: 1},
		Pubkey:   renter.Public().(ed25519.PublicKey),
		Sequence: 1,
	}

	return []commands.Example{
		{Filename: "wallet", Obj: wallet},
		{Filename: "record", Obj: record},
		{Filename: "user", Obj: user},
		{Filename: "initialize_msg", Obj: initMsg},
		{Filename: "rent_msg", Obj: rentMsg},
		{Filename: "return_msg", Obj: returnMsg},
		{Filename: "send_msg", Obj: sendMsg},
		{Filename: "signed_rent_tx", Obj: rentTx},
	}
}
