package cart

import "testing"

func TestMbc5_Bank0LegalInHighWindow(t *testing.T) {
	mp := &MemPtrs{}
	mp.Reset(32, 0, 2)
	for bank := 0; bank < 32; bank++ {
		mp.ROM()[bank*0x4000] = byte(bank)
	}
	m := NewMbc5(mp)

	m.RomWrite(0x2000, 0x00) // low byte -> 0
	m.RomWrite(0x3000, 0x00) // high bit -> 0
	if got := mp.ReadROM(0x4000); got != 0 {
		t.Fatalf("MBC5 bank 0 in high window = %d, want 0 (legal, unadjusted)", got)
	}
}

func TestMbc5_NineBitBankSelection(t *testing.T) {
	mp := &MemPtrs{}
	mp.Reset(512, 0, 2)
	m := NewMbc5(mp)

	m.RomWrite(0x2000, 0xFF) // low 8 bits
	m.RomWrite(0x3000, 0x01) // bit 8
	bank := mp.rombank.offset / 0x4000
	if bank != 0x1FF {
		t.Fatalf("9-bit rombank = %#03x, want 0x1FF", bank)
	}
}
