package rentbook

import (
	"fmt"

	"github.com/iov-one/rentbook/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is returned by a handler when a transaction was executed.
// Failures are always reported through the error value.
type DeliverResult struct {
	// Data is a machine readable value, for example the id of a created
	// record.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and allow to search the transaction
	// history.
	Tags []common.KVPair
}

// ToABCI converts the result into the tendermint representation.
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data: d.Data,
		Log:  d.Log,
		Tags: d.Tags,
	}
}

// CheckResult is returned by a handler when a transaction can be accepted
// into the mempool.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the maximum units of work this transaction may
	// perform.
	GasAllocated int64
}

// ToABCI converts the result into the tendermint representation.
func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverOrError builds the DeliverTx response. A non nil error always
// takes precedence over the result.
func DeliverOrError(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	if res == nil {
		return abci.ResponseDeliverTx{}
	}
	return res.ToABCI()
}

// CheckOrError builds the CheckTx response. A non nil error always takes
// precedence over the result.
func CheckOrError(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	if res == nil {
		return abci.ResponseCheckTx{}
	}
	return res.ToABCI()
}

// DeliverTxError converts an error into a DeliverTx response. Errors without
// a registered code are redacted unless debug is set.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := failure("deliver", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError converts an error into a CheckTx response. Errors without a
// registered code are redacted unless debug is set.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := failure("check", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func failure(stage string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, fmt.Sprintf("cannot %s tx: %s", stage, log)
}
