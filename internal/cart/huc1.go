package cart

// HuC1 implements the HuC1 state machine. Its RAM window is always
// read-enabled, even when "disabled" — write-enable is the only thing
// RAM-enable actually gates.
type HuC1 struct {
	mp *MemPtrs

	rombank     byte
	rambank     byte
	enableRAM   bool
	ramBankMode bool
}

func NewHuC1(mp *MemPtrs) *HuC1 {
	m := &HuC1{mp: mp, rombank: 1}
	m.setRambank()
	return m
}

func (m *HuC1) setRambank() {
	flags := ReadEnable
	if m.enableRAM {
		flags |= WriteEnable
	}
	bank := 0
	if m.ramBankMode {
		bank = maskBank(int(m.rambank), m.mp.RAMBanks())
	}
	m.mp.SetRAMBank(flags, bank)
}

// setRombank applies the same forbidden-bank aliasing quirk MBC1/MBC3 use,
// against the 6-bit rombank register before it's combined with rambank's
// high bits: the effective bank is never 0 mod 0x40. The combined value is
// masked to the cart's bank count after that, so on a cart with fewer than
// 64 banks the mask can still wrap it to bank 0.
func (m *HuC1) setRombank() {
	rb := adjustRombank(int(m.rombank), 0x3F)
	effective := rb
	if !m.ramBankMode {
		effective = int(m.rambank)<<6 | rb
	}
	m.mp.SetROMBank(maskBank(effective, m.mp.ROMBanks()))
}

func (m *HuC1) RomWrite(addr uint16, data byte) {
	switch region(addr) {
	case 0:
		m.enableRAM = (data & 0xF) == 0xA
		m.setRambank()
	case 1:
		m.rombank = data & 0x3F
		m.setRombank()
	case 2:
		m.rambank = data & 3
		if m.ramBankMode {
			m.setRambank()
		} else {
			m.setRombank()
		}
	case 3:
		m.ramBankMode = data&1 != 0
		m.setRambank()
		m.setRombank()
	}
}

func (m *HuC1) ReadRAM(addr uint16) byte     { return m.mp.ReadRAM(addr) }
func (m *HuC1) WriteRAM(addr uint16, d byte) { m.mp.WriteRAM(addr, d) }

func (m *HuC1) CanMapBankAt(addr uint16, bank int) bool {
	return defaultCanMapBankAt(addr, bank)
}

func (m *HuC1) Snapshot() MapperSnapshot {
	return MapperSnapshot{
		Kind:        KindHuC1,
		ROMBank:     uint16(m.rombank),
		RAMBank:     m.rambank,
		EnableRAM:   m.enableRAM,
		RAMBankMode: m.ramBankMode,
	}
}

func (m *HuC1) Restore(s MapperSnapshot) {
	m.rombank = byte(s.ROMBank)
	m.rambank = s.RAMBank
	m.enableRAM = s.EnableRAM
	m.ramBankMode = s.RAMBankMode
	m.setRambank()
	m.setRombank()
}
