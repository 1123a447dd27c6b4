package rental

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/migration"
	"github.com/iov-one/rentbook/orm"
	"github.com/iov-one/rentbook/x"
	"github.com/tendermint/tendermint/libs/common"
)

// RegisterRoutes registers handlers for all rental messages.
func RegisterRoutes(r rentbook.Registry, auth x.Authenticator, ledger Ledger) {
	r = migration.SchemaMigratingRegistry("rental", r)
	records := NewStore()
	engine := NewEngine(records, ledger, BlockClock{})
	r.Handle(pathInitializeMsg, &InitializeHandler{
		auth:    auth,
		engine:  engine,
		records: records,
		ids:     orm.NewSequence(BucketName, "id"),
	})
	r.Handle(pathRentMsg, &RentHandler{auth: auth, engine: engine})
	r.Handle(pathReturnMsg, &ReturnHandler{auth: auth, engine: engine})
}

// RegisterQuery exposes records under "/rentals".
func RegisterQuery(qr rentbook.QueryRouter) {
	NewRecordBucket().Register("rentals", qr)
}

// InitializeHandler creates records. The owner must sign.
type InitializeHandler struct {
	auth    x.Authenticator
	engine  *Engine
	records Store
	ids     orm.Sequence
}

var _ rentbook.Handler = (*InitializeHandler)(nil)

func (h *InitializeHandler) Check(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	return &rentbook.CheckResult{GasAllocated: conf.InitializeCost}, nil
}

func (h *InitializeHandler) Deliver(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	id := msg.RecordID
	if len(id) == 0 {
		if id, err = h.nextID(db); err != nil {
			return nil, errors.Wrap(err, "record id")
		}
	}
	if _, err := h.engine.Initialize(db, id, msg.Owner, msg.RentPricePerDay); err != nil {
		return nil, err
	}
	return &rentbook.DeliverResult{
		Data: id,
		Tags: recordTags(id, msg.Owner),
	}, nil
}

// nextID returns the next sequence value that is not taken. Explicit record
// ids share the keyspace with allocated ones, so occupied values are skipped.
func (h *InitializeHandler) nextID(db rentbook.KVStore) ([]byte, error) {
	for {
		id, err := h.ids.NextVal(db)
		if err != nil {
			return nil, err
		}
		switch _, err := h.records.Load(db, id); {
		case errors.ErrNotFound.Is(err):
			return id, nil
		case err != nil:
			return nil, err
		}
	}
}

func (h *InitializeHandler) validate(ctx rentbook.Context, tx rentbook.Tx) (*InitializeMsg, error) {
	var msg InitializeMsg
	if err := rentbook.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}

// RentHandler rents records. The renter must sign.
type RentHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ rentbook.Handler = (*RentHandler)(nil)

func (h *RentHandler) Check(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	return &rentbook.CheckResult{GasAllocated: conf.RentCost}, nil
}

func (h *RentHandler) Deliver(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.DeliverResult, error) {
	msg, renter, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.engine.Rent(ctx, db, msg.RecordID, renter, msg.Days); err != nil {
		return nil, err
	}
	return &rentbook.DeliverResult{
		Data: msg.RecordID,
		Tags: recordTags(msg.RecordID, renter),
	}, nil
}

func (h *RentHandler) validate(ctx rentbook.Context, tx rentbook.Tx) (*RentMsg, rentbook.Address, error) {
	var msg RentMsg
	if err := rentbook.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	renter := msg.Renter
	if renter == nil {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		renter = signer.Address()
	}
	if !h.auth.HasAddress(ctx, renter) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "renter signature missing")
	}
	return &msg, renter, nil
}

// ReturnHandler ends rentals. Both the owner and the renter must sign.
type ReturnHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ rentbook.Handler = (*ReturnHandler)(nil)

func (h *ReturnHandler) Check(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	return &rentbook.CheckResult{GasAllocated: conf.ReturnCost}, nil
}

func (h *ReturnHandler) Deliver(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.engine.Return(ctx, db, msg.RecordID, msg.Owner, msg.Renter); err != nil {
		return nil, err
	}
	return &rentbook.DeliverResult{
		Data: msg.RecordID,
		Tags: recordTags(msg.RecordID, msg.Owner),
	}, nil
}

func (h *ReturnHandler) validate(ctx rentbook.Context, tx rentbook.Tx) (*ReturnMsg, error) {
	var msg ReturnMsg
	if err := rentbook.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !x.HasAllAddresses(ctx, h.auth, []rentbook.Address{msg.Owner, msg.Renter}) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner and renter must sign")
	}
	return &msg, nil
}

func recordTags(id []byte, who rentbook.Address) []common.KVPair {
	return []common.KVPair{
		{Key: []byte(BucketName), Value: []byte(strings.ToUpper(hex.EncodeToString(id)))},
		{Key: []byte("signer"), Value: []byte(who.String())},
	}
}
