package rental

import (
	"encoding/binary"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
)

// RecordLayoutSize is the size of a serialized record. The layout is
// fixed and reserves space for the rental even when the record is free:
//
//	[schema u8][owner 32][renter tag u8][renter 32][price u64]
//	[duration tag u8][duration u64][start tag u8][start i64][escrowed u64]
//
// Integers are big-endian. A tag is 1 when the slot is set and 0 when it
// is empty. All three rental tags must be equal.
const RecordLayoutSize = 1 + rentbook.AddressLength + 1 + rentbook.AddressLength + 8 + 1 + 8 + 1 + 8 + 8

const (
	slotEmpty byte = 0
	slotSet   byte = 1
)

// Marshal writes the record in its fixed layout.
func (r *Record) Marshal() ([]byte, error) {
	schema := r.Metadata.GetSchema()
	if schema > 0xff {
		return nil, errors.Wrapf(errors.ErrModel, "schema %d does not fit the layout", schema)
	}
	if len(r.Owner) != rentbook.AddressLength {
		return nil, errors.Wrap(errors.ErrModel, "owner address")
	}

	raw := make([]byte, RecordLayoutSize)
	w := layoutWriter{buf: raw}
	w.putByte(byte(schema))
	w.putBytes(r.Owner)
	if rent := r.Rental; rent != nil {
		if len(rent.Renter) != rentbook.AddressLength {
			return nil, errors.Wrap(errors.ErrModel, "renter address")
		}
		w.putByte(slotSet)
		w.putBytes(rent.Renter)
		w.putUint64(r.RentPricePerDay)
		w.putByte(slotSet)
		w.putUint64(rent.Duration)
		w.putByte(slotSet)
		w.putUint64(uint64(rent.StartTime))
	} else {
		w.putByte(slotEmpty)
		w.skip(rentbook.AddressLength)
		w.putUint64(r.RentPricePerDay)
		w.putByte(slotEmpty)
		w.skip(8)
		w.putByte(slotEmpty)
		w.skip(8)
	}
	w.putUint64(r.Escrowed)
	return raw, nil
}

// Unmarshal reads a record written by Marshal.
func (r *Record) Unmarshal(raw []byte) error {
	if len(raw) != RecordLayoutSize {
		return errors.Wrapf(errors.ErrModel, "want %d bytes, got %d", RecordLayoutSize, len(raw))
	}
	rd := layoutReader{buf: raw}

	schema := rd.readByte()
	owner := rd.readBytes(rentbook.AddressLength)
	renterTag := rd.readByte()
	renter := rd.readBytes(rentbook.AddressLength)
	price := rd.readUint64()
	durationTag := rd.readByte()
	duration := rd.readUint64()
	startTag := rd.readByte()
	start := rd.readUint64()
	escrowed := rd.readUint64()

	if renterTag != durationTag || renterTag != startTag {
		return errors.Wrap(errors.ErrModel, "partially set rental")
	}

	rec := Record{
		Metadata:        &rentbook.Metadata{Schema: uint32(schema)},
		Owner:           owner,
		RentPricePerDay: price,
		Escrowed:        escrowed,
	}
	switch renterTag {
	case slotEmpty:
	case slotSet:
		rec.Rental = &Rental{
			Renter:    renter,
			Duration:  duration,
			StartTime: rentbook.UnixTime(start),
		}
	default:
		return errors.Wrapf(errors.ErrModel, "unknown slot tag %d", renterTag)
	}
	*r = rec
	return nil
}

type layoutWriter struct {
	buf []byte
	pos int
}

func (w *layoutWriter) putByte(b byte) {
	w.buf[w.pos] = b
	w.pos++
}

func (w *layoutWriter) putBytes(b []byte) {
	w.pos += copy(w.buf[w.pos:], b)
}

func (w *layoutWriter) putUint64(n uint64) {
	binary.BigEndian.PutUint64(w.buf[w.pos:], n)
	w.pos += 8
}

func (w *layoutWriter) skip(n int) {
	w.pos += n
}

type layoutReader struct {
	buf []byte
	pos int
}

func (r *layoutReader) readByte() byte {
	b := r.buf[r.pos]
	r.pos++
	return b
}

// readBytes returns a copy so that the record does not share memory with the
// store.
func (r *layoutReader) readBytes(n int) []byte {
	b := make([]byte, n)
	r.pos += copy(b, r.buf[r.pos:r.pos+n])
	return b
}

func (r *layoutReader) readUint64() uint64 {
	n := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return n
}
