package cart

import "testing"

func TestTpp1_CurmapTransitions(t *testing.T) {
	mp := &MemPtrs{}
	mp.Reset(4, 4, 2)
	tx := NewTpp1Ext(nil)
	tx.Set(true, 0x04)
	m := NewTpp1(mp, tx)

	m.RomWrite(0x0003, 0x02) // curmap=1, cartridge RAM read-only
	m.WriteRAM(0xA000, 0x11)
	if got := m.ReadRAM(0xA000); got == 0x11 {
		t.Fatalf("curmap=1 RAM should be read-only, write landed")
	}

	m.RomWrite(0x0003, 0x05) // curmap=3, RTC registers
	m.WriteRAM(0xA000, 0x07)
	if got := tx.dataW; got != 0x07 {
		t.Fatalf("curmap=3 write to MR0 offset did not set dataW, got %#02x", got)
	}
}

func TestTpp1_SettimeCommand(t *testing.T) {
	mp := &MemPtrs{}
	mp.Reset(4, 4, 2)
	var now int64 = 500
	tx := NewTpp1Ext(func() int64 { return now })
	tx.Set(true, 0x04)
	tx.SetBaseTime(0)
	m := NewTpp1(mp, tx)

	tx.Latch()
	m.RomWrite(0x0003, 0x11) // settime command
	if tx.BaseTime() != 0 {
		t.Fatalf("settime did not re-anchor base_time, got %d", tx.BaseTime())
	}
}

func TestTpp1_RombankRegisters(t *testing.T) {
	mp := &MemPtrs{}
	mp.Reset(4, 4, 2)
	tx := NewTpp1Ext(nil)
	tx.Set(true, 0x00)
	m := NewTpp1(mp, tx)

	m.RomWrite(0x0000, 0x34) // MR0
	m.RomWrite(0x0001, 0x12) // MR1
	if m.rombank != 0x1234 {
		t.Fatalf("rombank = %#04x, want 0x1234", m.rombank)
	}
}
