package cart

// Mbc2 implements the MBC2 state machine. MBC2 uses a distinct address
// selector (addr & 0x6100) instead of the shared 2-bit region decode, and
// has no separate RAM-bank register: its built-in 512x4-bit RAM is
// modeled as a single rambanks=1 window.
type Mbc2 struct {
	mp *MemPtrs

	rombank   byte
	enableRAM bool
}

func NewMbc2(mp *MemPtrs) *Mbc2 {
	return &Mbc2{mp: mp, rombank: 1}
}

func (m *Mbc2) RomWrite(addr uint16, data byte) {
	switch addr & 0x6100 {
	case 0x0000:
		m.enableRAM = (data & 0xF) == 0xA
		m.mp.SetRAMBank(enableFlags(m.enableRAM), 0)
	case 0x2100:
		m.rombank = data & 0xF
		m.mp.SetROMBank(maskBank(int(m.rombank), m.mp.ROMBanks()))
	}
}

// Only the low nibble of each byte is meaningful in MBC2's internal RAM;
// a read while RAM is disabled returns 0xFF.
func (m *Mbc2) ReadRAM(addr uint16) byte {
	if m.mp.RAMWindowFlags()&ReadEnable == 0 {
		return 0xFF
	}
	return m.mp.ReadRAM(addr) & 0x0F
}

func (m *Mbc2) WriteRAM(addr uint16, d byte) { m.mp.WriteRAM(addr, d&0x0F) }

func (m *Mbc2) CanMapBankAt(addr uint16, bank int) bool {
	return defaultCanMapBankAt(addr, bank)
}

func (m *Mbc2) Snapshot() MapperSnapshot {
	return MapperSnapshot{Kind: KindMBC2, ROMBank: uint16(m.rombank), EnableRAM: m.enableRAM}
}

func (m *Mbc2) Restore(s MapperSnapshot) {
	m.rombank = byte(s.ROMBank)
	m.enableRAM = s.EnableRAM
	m.mp.SetRAMBank(enableFlags(m.enableRAM), 0)
	m.mp.SetROMBank(maskBank(int(m.rombank), m.mp.ROMBanks()))
}
