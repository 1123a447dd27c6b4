package app

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/x/sigs"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
)

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// An address (hex) can be passed as the first argument. Without it a new
// key is generated and printed to stdout.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr rentbook.Address
	if len(args) > 0 {
		raw, err := hex.DecodeString(args[0])
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "address %q", args[0])
		}
		addr = raw
		if err := addr.Validate(); err != nil {
			return nil, err
		}
	} else {
		a, keys, err := GenerateKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(keys)
	}

	opts := fmt.Sprintf(`
          {
            "initialize_schema": [
              {"pkg": "cash", "ver": 1},
              {"pkg": "sigs", "ver": 1},
              {"pkg": "rental", "ver": 1}
            ],
            "cash": [
              {
                "address": "%s",
                "balance": 123456789
              }
            ],
            "rental": [],
            "conf": {
              "rental": {
                "metadata": {"schema": 1},
                "initialize_cost": 100,
                "rent_cost": 200,
                "return_cost": 200
              }
            }
          }
	`, addr)
	return []byte(opts), nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "rentald.db")
	}

	application, err := Application(Name, Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}

type keyOutput struct {
	Address rentbook.Address `json:"address"`
	Pubkey  string           `json:"pub_key"`
	Secret  string           `json:"secret"`
}

// GenerateKey creates a new ed25519 key pair and returns the address of
// its signature condition, along with a json representation of the keys.
func GenerateKey() (rentbook.Address, string, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrHuman, err.Error())
	}
	addr := sigs.KeyCondition(pub).Address()

	out := keyOutput{
		Address: addr,
		Pubkey:  hex.EncodeToString(pub),
		Secret:  hex.EncodeToString(priv),
	}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrHuman, err.Error())
	}
	return addr, string(keys), nil
}
