package cart

// Tpp1 implements the TPP1 extended mapper's control-register decoding.
// It drives a shared Tpp1Ext (TX) for the clock/rumble/status-register
// personalities multiplexed onto the RAM window.
type Tpp1 struct {
	mp *MemPtrs
	tx *Tpp1Ext

	rombank uint16
	rambank byte
	mapmode byte
}

func NewTpp1(mp *MemPtrs, tx *Tpp1Ext) *Tpp1 {
	return &Tpp1{mp: mp, tx: tx, rombank: 1}
}

func (m *Tpp1) setRambank() {
	var flags byte
	switch m.mapmode {
	case 0:
		flags = ReadEnable | RTCEnable
	case 1:
		flags = ReadEnable
	case 2:
		flags = ReadEnable | WriteEnable
	case 3:
		if m.tx.Features()&4 != 0 {
			flags = ReadEnable | WriteEnable | RTCEnable
		}
	}
	m.tx.SetRambank(m.rambank)
	m.mp.SetRAMBank(flags, maskBank(int(m.rambank), m.mp.RAMBanks()))
}

func (m *Tpp1) setRombank() {
	m.tx.SetRombank(m.rombank)
	m.mp.SetROMBank(maskBank(int(m.rombank), m.mp.ROMBanks()))
}

func (m *Tpp1) RomWrite(addr uint16, data byte) {
	if addr >= 0x4000 {
		return
	}
	switch addr & 3 {
	case 0: // MR0
		m.rombank = (m.rombank & 0xFF00) | uint16(data)
		m.setRombank()
	case 1: // MR1
		m.rombank = (m.rombank & 0x00FF) | uint16(data)<<8
		m.setRombank()
	case 2: // MR2
		m.rambank = data
		m.setRambank()
	case 3: // MR3
		switch data {
		case 0x00:
			m.mapmode = 0
			m.tx.SetMap(0)
			m.setRambank()
		case 0x02:
			m.mapmode = 1
			m.tx.SetMap(1)
			m.setRambank()
		case 0x03:
			m.mapmode = 2
			m.tx.SetMap(2)
			m.setRambank()
		case 0x05:
			m.mapmode = 3
			m.tx.SetMap(3)
			m.setRambank()
		case 0x10:
			m.tx.Latch()
		case 0x11:
			m.tx.Settime()
		case 0x14:
			m.tx.ResetOverflow()
		case 0x18:
			m.tx.Halt()
		case 0x19:
			m.tx.Resume()
		case 0x20, 0x21, 0x22, 0x23:
			m.tx.SetRumble(data & 3)
		}
	}
}

func (m *Tpp1) ReadRAM(addr uint16) byte {
	if m.mp.RAMWindowFlags()&RTCEnable != 0 {
		return m.tx.Read(addr)
	}
	return m.mp.ReadRAM(addr)
}

func (m *Tpp1) WriteRAM(addr uint16, data byte) {
	if m.mp.RAMWindowFlags()&RTCEnable != 0 {
		m.tx.Write(addr, data)
		return
	}
	m.mp.WriteRAM(addr, data)
}

func (m *Tpp1) CanMapBankAt(addr uint16, bank int) bool {
	return defaultCanMapBankAt(addr, bank)
}

func (m *Tpp1) Snapshot() MapperSnapshot {
	return MapperSnapshot{
		Kind:    KindTPP1,
		ROMBank: m.rombank,
		RAMBank: m.rambank,
		MapMode: m.mapmode,
	}
}

func (m *Tpp1) Restore(s MapperSnapshot) {
	m.rombank = s.ROMBank
	m.rambank = s.RAMBank
	m.mapmode = s.MapMode
	m.setRambank()
	m.setRombank()
}
