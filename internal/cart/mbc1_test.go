package cart

import "testing"

func newMbc1Fixture(rombanks, rambanks int) (*Mbc1, *MemPtrs) {
	mp := &MemPtrs{}
	mp.Reset(rombanks, rambanks, 2)
	return NewMbc1(mp), mp
}

func TestMbc1_BankSwitchScenario(t *testing.T) {
	m, mp := newMbc1Fixture(8, 0)
	for bank := 0; bank < 8; bank++ {
		mp.ROM()[bank*0x4000] = byte(bank)
	}

	m.RomWrite(0x2000, 0x00) // adjusted to bank 1
	if got := mp.ReadROM(0x4000); got != 1 {
		t.Fatalf("bank after selecting 0 = %d, want 1 (adjusted)", got)
	}

	m.RomWrite(0x2000, 0x02)
	if got := mp.ReadROM(0x4000); got != 2 {
		t.Fatalf("bank after selecting 2 = %d, want 2", got)
	}
}

func TestMbc1_EffectiveRombankAlwaysInRange(t *testing.T) {
	m, mp := newMbc1Fixture(4, 1)
	for data := 0; data < 256; data++ {
		m.RomWrite(0x2000, byte(data))
		m.RomWrite(0x4000, byte(data))
		bank := mp.rombank.offset / 0x4000
		if bank < 0 || bank >= mp.ROMBanks() {
			t.Fatalf("rombank %d out of range [0,%d)", bank, mp.ROMBanks())
		}
	}
}

func TestMbc1_AdjustedBankNeverZero(t *testing.T) {
	m, mp := newMbc1Fixture(32, 0)
	for data := 0; data < 0x20; data++ {
		m.RomWrite(0x2000, byte(data))
		bank := mp.rombank.offset / 0x4000
		if bank%0x20 == 0 {
			t.Fatalf("effective bank %d is 0 mod 0x20 after write %#02x", bank, data)
		}
	}
}

func TestMbc1_MaskBeforeAdjustOnSmallCart(t *testing.T) {
	m, mp := newMbc1Fixture(8, 0)

	m.RomWrite(0x2000, 0x08) // register value 8 wraps to bank 0 on an 8-bank cart
	bank := mp.rombank.offset / 0x4000
	if bank != 1 {
		t.Fatalf("effective bank for register 0x08 on an 8-bank cart = %d, want 1 (mask wraps to 0, then adjusted to 1)", bank)
	}
}

func TestMbc1_RamBankModeDeferred(t *testing.T) {
	m, mp := newMbc1Fixture(32, 4)
	m.RomWrite(0x2000, 0x05) // rombank low bits = 5
	m.RomWrite(0x4000, 0x01) // rambank_mode pending bits, not yet ram_bank_mode

	// Region 3 toggles ram_bank_mode but must not re-aim windows itself.
	beforeROM := mp.rombank
	m.RomWrite(0x6000, 0x01)
	if mp.rombank != beforeROM {
		t.Fatalf("region-3 write re-aimed ROM window immediately, want deferred")
	}

	m.RomWrite(0x2000, 0x05) // next bank-select write observes the new mode
	if m.rombank != 0x05 {
		t.Fatalf("rombank = %#02x, want 0x05", m.rombank)
	}
}

func TestMbc1_SnapshotRoundTrip(t *testing.T) {
	m, _ := newMbc1Fixture(8, 4)
	m.RomWrite(0x0000, 0x0A)
	m.RomWrite(0x2000, 0x03)
	m.RomWrite(0x6000, 0x01)
	m.RomWrite(0x4000, 0x02)

	snap := m.Snapshot()
	other, _ := newMbc1Fixture(8, 4)
	other.Restore(snap)

	if otherSnap := other.Snapshot(); otherSnap != snap {
		t.Fatalf("restored Mbc1 state diverges: got %+v want %+v", otherSnap, snap)
	}
}
