package rental

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/gconf"
)

// Configuration holds the gas allocated to each rental message. It is
// loaded from the "conf" section of the genesis file.
type Configuration struct {
	Metadata       *rentbook.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	InitializeCost int64              `protobuf:"varint,2,opt,name=initialize_cost,proto3" json:"initialize_cost,omitempty"`
	RentCost       int64              `protobuf:"varint,3,opt,name=rent_cost,proto3" json:"rent_cost,omitempty"`
	ReturnCost     int64              `protobuf:"varint,4,opt,name=return_cost,proto3" json:"return_cost,omitempty"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration is used when the chain was not configured.
func DefaultConfiguration() Configuration {
	return Configuration{
		Metadata:       &rentbook.Metadata{Schema: 1},
		InitializeCost: 100,
		RentCost:       200,
		ReturnCost:     200,
	}
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	if c.InitializeCost < 0 {
		errs = errors.AppendField(errs, "InitializeCost", errors.ErrAmount)
	}
	if c.RentCost < 0 {
		errs = errors.AppendField(errs, "RentCost", errors.ErrAmount)
	}
	if c.ReturnCost < 0 {
		errs = errors.AppendField(errs, "ReturnCost", errors.ErrAmount)
	}
	return errs
}

func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationPB)(c))
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationPB)(c))
}

type configurationPB Configuration

func (c *configurationPB) Reset()         { *c = configurationPB{} }
func (c *configurationPB) String() string { return proto.CompactTextString(c) }
func (*configurationPB) ProtoMessage()    {}

// loadConf returns the stored configuration or the default one.
func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, BucketName, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, err
	}
}
