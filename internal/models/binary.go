package models

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"
)

var byteOrder = binary.LittleEndian

// The binary snapshot stores the ledger as a roaring bitmap of active day
// ordinals plus a sparse section for days whose count deviates from 1.
// Most days hold a single view, so the bitmap alone covers them.
//
// Layout: bitmapLen(uint32) + bitmap + deviants(uint32) +
// per deviant: ordinal(uint32) count(int32).

// writeLedgerSnapshot writes a day key -> count map in binary format.
// Malformed keys and non-positive counts are skipped.
func writeLedgerSnapshot(w io.Writer, data map[string]int) error {
	active := roaring.New()
	deviants := make(map[uint32]int32)
	for key, count := range data {
		if count <= 0 {
			continue
		}
		ord, ok := DayOrdinal(key)
		if !ok {
			continue
		}
		active.Add(ord)
		if count != 1 {
			deviants[ord] = int32(count)
		}
	}

	bitmapBytes, err := active.ToBytes()
	if err != nil {
		return fmt.Errorf("serialize active-day bitmap: %w", err)
	}
	if err := binary.Write(w, byteOrder, uint32(len(bitmapBytes))); err != nil {
		return err
	}
	if _, err := w.Write(bitmapBytes); err != nil {
		return err
	}

	if err := binary.Write(w, byteOrder, uint32(len(deviants))); err != nil {
		return err
	}
	for ord, count := range deviants {
		if err := binary.Write(w, byteOrder, ord); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, count); err != nil {
			return err
		}
	}
	return nil
}

// readLedgerSnapshot is the inverse of writeLedgerSnapshot.
func readLedgerSnapshot(r io.Reader) (map[string]int, error) {
	var bitmapLen uint32
	if err := binary.Read(r, byteOrder, &bitmapLen); err != nil {
		return nil, err
	}
	buf := make([]byte, bitmapLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	active := roaring.New()
	if err := active.UnmarshalBinary(buf); err != nil {
		return nil, fmt.Errorf("parse active-day bitmap: %w", err)
	}

	var deviantCount uint32
	if err := binary.Read(r, byteOrder, &deviantCount); err != nil {
		return nil, err
	}
	deviants := make(map[uint32]int32, deviantCount)
	for i := uint32(0); i < deviantCount; i++ {
		var ord uint32
		var count int32
		if err := binary.Read(r, byteOrder, &ord); err != nil {
			return nil, err
		}
		if err := binary.Read(r, byteOrder, &count); err != nil {
			return nil, err
		}
		deviants[ord] = count
	}

	data := make(map[string]int, active.GetCardinality())
	it := active.Iterator()
	for it.HasNext() {
		ord := it.Next()
		count := 1
		if deviant, ok := deviants[ord]; ok {
			count = int(deviant)
		}
		data[KeyOfOrdinal(ord)] = count
	}
	return data, nil
}

// WriteBinaryTo writes the ledger in binary snapshot format.
func (l *Ledger) WriteBinaryTo(w io.Writer) error {
	l.Mutex.RLock()
	defer l.Mutex.RUnlock()
	return writeLedgerSnapshot(w, l.Data)
}

// ReadBinaryFrom replaces the ledger contents from binary snapshot format.
func (l *Ledger) ReadBinaryFrom(r io.Reader) error {
	data, err := readLedgerSnapshot(r)
	if err != nil {
		return err
	}
	l.Mutex.Lock()
	defer l.Mutex.Unlock()
	l.Data = data
	return nil
}
