package cart

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// MapperSnapshot captures the per-variant bank-select registers: rombank,
// rambank, enable_ram, ram_bank_mode, and (TPP1) mapmode. Not every field
// is meaningful for every Kind; unused fields are left zero.
type MapperSnapshot struct {
	Kind        Kind
	ROMBank     uint16
	ROMBank0    byte
	RAMBank     byte
	EnableRAM   bool
	RAMBankMode bool
	MapMode     byte
}

// RTCSnapshot is the MBC3 real-time clock's full persisted state,
// including the last-latch tracker needed to detect a latch's rising edge.
type RTCSnapshot struct {
	BaseTime      int64
	HaltTime      int64
	Halt          bool
	Carry         bool
	DayLow        byte
	DayHigh       byte
	Hours         byte
	Minutes       byte
	Seconds       byte
	LastLatchData byte
	Active        bool
}

// TPP1Snapshot is the TPP1 extension's full persisted register state.
type TPP1Snapshot struct {
	BaseTime int64
	HaltTime int64
	DataW    byte
	DataH    byte
	DataM    byte
	DataS    byte
	Rumble   byte
	Curmap   byte
	Features byte
	Enabled  bool
	Running  bool
	Overflow bool
}

// Snapshot is the top-level save-state record a Cartridge can produce and
// restore. The format is internal to this module; it is not the
// battery-backed save-data format LoadSaveData/SaveSaveData exchange.
type Snapshot struct {
	Mapper MapperSnapshot
	RTC    RTCSnapshot
	TPP1   TPP1Snapshot
	RAM    []byte
}

// EncodeSnapshot gob-encodes s into a portable byte slice.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot gob-decodes data produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
