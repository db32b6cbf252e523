package cart

// Mbc5 implements the MBC5 state machine: a 9-bit ROM bank and 4-bit RAM
// bank with no forbidden-bank aliasing — bank 0 is legal in the high
// window.
type Mbc5 struct {
	mp *MemPtrs

	rombank   uint16
	rambank   byte
	enableRAM bool
}

func NewMbc5(mp *MemPtrs) *Mbc5 {
	return &Mbc5{mp: mp, rombank: 1}
}

func (m *Mbc5) setRambank() {
	m.mp.SetRAMBank(enableFlags(m.enableRAM), maskBank(int(m.rambank), m.mp.RAMBanks()))
}

func (m *Mbc5) setRombank() {
	m.mp.SetROMBank(maskBank(int(m.rombank), m.mp.ROMBanks()))
}

func (m *Mbc5) RomWrite(addr uint16, data byte) {
	switch region(addr) {
	case 0:
		m.enableRAM = (data & 0xF) == 0xA
		m.setRambank()
	case 1:
		if addr < 0x3000 {
			m.rombank = (m.rombank & 0x100) | uint16(data)
		} else {
			m.rombank = (uint16(data)<<8&0x100) | (m.rombank & 0xFF)
		}
		m.setRombank()
	case 2:
		m.rambank = data & 0xF
		m.setRambank()
	case 3:
		// ignored
	}
}

func (m *Mbc5) ReadRAM(addr uint16) byte     { return m.mp.ReadRAM(addr) }
func (m *Mbc5) WriteRAM(addr uint16, d byte) { m.mp.WriteRAM(addr, d) }

func (m *Mbc5) CanMapBankAt(addr uint16, bank int) bool {
	return defaultCanMapBankAt(addr, bank)
}

func (m *Mbc5) Snapshot() MapperSnapshot {
	return MapperSnapshot{
		Kind:      KindMBC5,
		ROMBank:   m.rombank,
		RAMBank:   m.rambank,
		EnableRAM: m.enableRAM,
	}
}

func (m *Mbc5) Restore(s MapperSnapshot) {
	m.rombank = s.ROMBank
	m.rambank = s.RAMBank
	m.enableRAM = s.EnableRAM
	m.setRambank()
	m.setRombank()
}
