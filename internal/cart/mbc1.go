package cart

func maskBank(bank, banks int) int {
	if banks <= 0 {
		return 0
	}
	return bank & (banks - 1)
}

// Mbc1 implements the MBC1 state machine.
type Mbc1 struct {
	mp *MemPtrs

	rombank     byte
	rambank     byte
	enableRAM   bool
	ramBankMode bool
}

func NewMbc1(mp *MemPtrs) *Mbc1 {
	return &Mbc1{mp: mp, rombank: 1}
}

func (m *Mbc1) setRambank() {
	m.mp.SetRAMBank(enableFlags(m.enableRAM), maskBank(int(m.rambank), m.mp.RAMBanks()))
}

func (m *Mbc1) setRombank() {
	bank := maskBank(int(m.rombank), m.mp.ROMBanks())
	m.mp.SetROMBank(adjustRombank(bank, 0x1F))
}

func (m *Mbc1) RomWrite(addr uint16, data byte) {
	switch region(addr) {
	case 0:
		m.enableRAM = (data & 0xF) == 0xA
		m.setRambank()
	case 1:
		if m.ramBankMode {
			m.rombank = data & 0x1F
		} else {
			m.rombank = (m.rombank & 0x60) | (data & 0x1F)
		}
		m.setRombank()
	case 2:
		if m.ramBankMode {
			m.rambank = data & 3
			m.setRambank()
		} else {
			m.rombank = (data << 5 & 0x60) | (m.rombank & 0x1F)
			m.setRombank()
		}
	case 3:
		// Deferred: the new ram_bank_mode value is only consulted by the
		// next region-1/2 write, rather than re-aiming the windows here.
		m.ramBankMode = data&1 != 0
	}
}

func (m *Mbc1) ReadRAM(addr uint16) byte     { return m.mp.ReadRAM(addr) }
func (m *Mbc1) WriteRAM(addr uint16, d byte) { m.mp.WriteRAM(addr, d) }

func (m *Mbc1) CanMapBankAt(addr uint16, bank int) bool {
	return defaultCanMapBankAt(addr, bank)
}

func (m *Mbc1) Snapshot() MapperSnapshot {
	return MapperSnapshot{
		Kind:        KindMBC1,
		ROMBank:     uint16(m.rombank),
		RAMBank:     m.rambank,
		EnableRAM:   m.enableRAM,
		RAMBankMode: m.ramBankMode,
	}
}

func (m *Mbc1) Restore(s MapperSnapshot) {
	m.rombank = byte(s.ROMBank)
	m.rambank = s.RAMBank
	m.enableRAM = s.EnableRAM
	m.ramBankMode = s.RAMBankMode
	m.setRambank()
	m.setRombank()
}
