package migration

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/orm"
)

// Schema declares that the data of a package is stored using the given
// version of its layout.
type Schema struct {
	Metadata *rentbook.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Pkg      string             `protobuf:"bytes,2,opt,name=pkg,proto3" json:"pkg,omitempty"`
	Version  uint32             `protobuf:"varint,3,opt,name=version,proto3" json:"version,omitempty"`
}

var _ orm.CloneableData = (*Schema)(nil)

func (s *Schema) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if s.Version < 1 {
		return errors.Wrap(errors.ErrModel, "version must be greater than zero")
	}
	if s.Pkg == "" {
		return errors.Wrap(errors.ErrModel, "pkg is required")
	}
	return nil
}

func (s *Schema) Copy() orm.CloneableData {
	return &Schema{
		Metadata: s.Metadata.Copy(),
		Version:  s.Version,
		Pkg:      s.Pkg,
	}
}

func (s *Schema) Marshal() ([]byte, error) {
	return proto.Marshal((*schemaPB)(s))
}

func (s *Schema) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*schemaPB)(s))
}

type schemaPB Schema

func (s *schemaPB) Reset()         { *s = schemaPB{} }
func (s *schemaPB) String() string { return proto.CompactTextString(s) }
func (*schemaPB) ProtoMessage()    {}

// schemaID returns a deterministic ID of a schema instance. Created IDs sort
// lexicographically from the lowest to the highest version.
func schemaID(pkg string, version uint32) []byte {
	raw := make([]byte, len(pkg)+4)
	copy(raw, pkg)
	binary.BigEndian.PutUint32(raw[len(pkg):], version)
	return raw
}

// SchemaBucket keeps track of the schema version of every package.
type SchemaBucket struct {
	orm.Bucket
}

// NewSchemaBucket returns a bucket for schema declarations. It is using a
// plain orm.Bucket so that schemas can be stored without a schema version
// being registered for themselves.
func NewSchemaBucket() *SchemaBucket {
	b := orm.NewBucket("schema", orm.NewSimpleObj(nil, &Schema{}))
	return &SchemaBucket{Bucket: b}
}

// MustInitPkg initializes schema versioning for given package names by
// registering version one. Duplicate registrations are ignored.
// This function panics if not successful.
func MustInitPkg(db rentbook.KVStore, packageNames ...string) {
	for _, name := range packageNames {
		err := NewSchemaBucket().Create(db, &Schema{
			Metadata: &rentbook.Metadata{Schema: 1},
			Pkg:      name,
			Version:  1,
		})
		if err != nil && !errors.ErrDuplicate.Is(err) {
			panic(errors.Wrap(err, name))
		}
	}
}

// CurrentSchema returns the current schema version of a given package.
// It returns ErrNotFound if no schema version was registered for this
// package. Minimum schema version is 1.
func (b *SchemaBucket) CurrentSchema(db rentbook.ReadOnlyKVStore, packageName string) (uint32, error) {
	for ver := uint32(1); ver < 10000; ver++ {
		ok, err := b.Bucket.Has(db, schemaID(packageName, ver))
		if err != nil {
			return 0, errors.Wrap(err, "bucket has")
		}
		if ok {
			continue
		}
		if ver == 1 {
			return 0, errors.Wrapf(errors.ErrNotFound, "schema of %q not initialized", packageName)
		}
		return ver - 1, nil
	}
	return 0, errors.Wrap(errors.ErrState, "version too high")
}

// Create stores the next schema version of a package.
func (b *SchemaBucket) Create(db rentbook.KVStore, s *Schema) error {
	if err := b.validateNextSchema(db, s); err != nil {
		return err
	}
	return b.Bucket.Save(db, orm.NewSimpleObj(schemaID(s.Pkg, s.Version), s))
}

// validateNextSchema returns an error if given schema does not declare the
// next version of its package.
func (b *SchemaBucket) validateNextSchema(db rentbook.ReadOnlyKVStore, next *Schema) error {
	ver, err := b.CurrentSchema(db, next.Pkg)
	switch {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		if next.Version != 1 {
			return errors.Wrap(errors.ErrInput, "schema not initialized with version 1")
		}
	default:
		return errors.Wrap(err, "current schema")
	}
	if ver+1 != next.Version {
		return errors.Wrapf(errors.ErrDuplicate, "previous schema is %d", ver)
	}
	return nil
}

// CurrentVersion returns the current schema version of a package.
func CurrentVersion(db rentbook.ReadOnlyKVStore, packageName string) (uint32, error) {
	return NewSchemaBucket().CurrentSchema(db, packageName)
}

// RegisterQuery registers schema bucket for querying.
func RegisterQuery(qr rentbook.QueryRouter) {
	NewSchemaBucket().Register("schemas", qr)
}
