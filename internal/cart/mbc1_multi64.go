package cart

// toMulti64 maps a full MBC1 rombank value onto one of sixteen 64 KiB
// sub-carts: the upper bank bits (rombank>>1 & 0x30) select the sub-cart,
// the low nibble selects the bank within it.
func toMulti64(rombank int) int {
	return (rombank>>1&0x30 | rombank&0xF)
}

// Mbc1Multi64 implements the multicart heuristic variant: a 1 MiB,
// no-RAM MBC1 cart split into sixteen 64 KiB games selected by the
// upper bank bits.
type Mbc1Multi64 struct {
	mp *MemPtrs

	rombank      byte
	enableRAM    bool
	rombank0Mode bool
}

func NewMbc1Multi64(mp *MemPtrs) *Mbc1Multi64 {
	return &Mbc1Multi64{mp: mp, rombank: 1}
}

// setRombank re-aims both ROM windows from the current rombank/mode,
// used by region-2/3 writes.
func (m *Mbc1Multi64) setRombank() {
	if m.rombank0Mode {
		rb := toMulti64(int(m.rombank))
		m.mp.SetROMBank0(rb & 0x30)
		m.mp.SetROMBank(adjustRombank(rb, 0xF))
	} else {
		m.mp.SetROMBank0(0)
		m.mp.SetROMBank(adjustRombank(maskBank(int(m.rombank), m.mp.ROMBanks()), 0x1F))
	}
}

func (m *Mbc1Multi64) RomWrite(addr uint16, data byte) {
	switch region(addr) {
	case 0:
		m.enableRAM = (data & 0xF) == 0xA
		m.mp.SetRAMBank(enableFlags(m.enableRAM), 0)
	case 1:
		// Only the high window is re-aimed here, mirroring the source's
		// own asymmetry: region-1 writes never touch the low window.
		m.rombank = (m.rombank & 0x60) | (data & 0x1F)
		rb := int(m.rombank)
		if m.rombank0Mode {
			rb = toMulti64(rb)
			m.mp.SetROMBank(adjustRombank(rb, 0xF))
		} else {
			rb = maskBank(rb, m.mp.ROMBanks())
			m.mp.SetROMBank(adjustRombank(rb, 0x1F))
		}
	case 2:
		m.rombank = (data << 5 & 0x60) | (m.rombank & 0x1F)
		m.setRombank()
	case 3:
		m.rombank0Mode = data&1 != 0
		m.setRombank()
	}
}

func (m *Mbc1Multi64) ReadRAM(addr uint16) byte     { return m.mp.ReadRAM(addr) }
func (m *Mbc1Multi64) WriteRAM(addr uint16, d byte) { m.mp.WriteRAM(addr, d) }

// CanMapBankAt reflects that any sub-cart's bank 0 lives at 0x0000, not
// just the global bank 0.
func (m *Mbc1Multi64) CanMapBankAt(addr uint16, bank int) bool {
	return (addr < 0x4000) == (bank&0xF == 0)
}

func (m *Mbc1Multi64) Snapshot() MapperSnapshot {
	return MapperSnapshot{
		Kind:        KindMBC1Multi64,
		ROMBank:     uint16(m.rombank),
		EnableRAM:   m.enableRAM,
		RAMBankMode: m.rombank0Mode,
	}
}

func (m *Mbc1Multi64) Restore(s MapperSnapshot) {
	m.rombank = byte(s.ROMBank)
	m.enableRAM = s.EnableRAM
	m.rombank0Mode = s.RAMBankMode
	m.mp.SetRAMBank(enableFlags(m.enableRAM), 0)
	m.setRombank()
}
