package cart

// Mbc3 implements the MBC3 state machine, optionally wired to an RTC.
// rtc is nil when the header doesn't declare a real-time clock; MBC3
// then behaves as a plain ROM/RAM-banking mapper.
type Mbc3 struct {
	mp  *MemPtrs
	rtc *RTC

	rombank   byte
	rambank   byte
	enableRAM bool
}

func NewMbc3(mp *MemPtrs, rtc *RTC) *Mbc3 {
	return &Mbc3{mp: mp, rtc: rtc, rombank: 1}
}

func (m *Mbc3) setRambank() {
	flags := enableFlags(m.enableRAM)
	if m.rtc != nil {
		m.rtc.Set(m.enableRAM, m.rambank)
		if m.rtc.Active() {
			flags |= RTCEnable
		}
	}
	m.mp.SetRAMBank(flags, maskBank(int(m.rambank), m.mp.RAMBanks()))
}

func (m *Mbc3) setRombank() {
	bank := adjustRombank(int(m.rombank), 0x7F)
	m.mp.SetROMBank(maskBank(bank, m.mp.ROMBanks()))
}

func (m *Mbc3) RomWrite(addr uint16, data byte) {
	switch region(addr) {
	case 0:
		m.enableRAM = (data & 0xF) == 0xA
		m.setRambank()
	case 1:
		m.rombank = data & 0x7F
		m.setRombank()
	case 2:
		// No 2-bit mask: the high values (0x08-0x0C) select RTC
		// registers instead of a RAM bank, always forwarded to the RTC.
		m.rambank = data
		m.setRambank()
	case 3:
		if m.rtc != nil {
			m.rtc.Latch(data)
		}
	}
}

func (m *Mbc3) ReadRAM(addr uint16) byte {
	if m.rtc != nil && m.mp.RAMWindowFlags()&RTCEnable != 0 {
		return m.rtc.Read(m.rambank)
	}
	return m.mp.ReadRAM(addr)
}

func (m *Mbc3) WriteRAM(addr uint16, data byte) {
	if m.rtc != nil && m.mp.RAMWindowFlags()&RTCEnable != 0 {
		m.rtc.Write(m.rambank, data)
		return
	}
	m.mp.WriteRAM(addr, data)
}

func (m *Mbc3) CanMapBankAt(addr uint16, bank int) bool {
	return defaultCanMapBankAt(addr, bank)
}

func (m *Mbc3) Snapshot() MapperSnapshot {
	return MapperSnapshot{
		Kind:      KindMBC3,
		ROMBank:   uint16(m.rombank),
		RAMBank:   m.rambank,
		EnableRAM: m.enableRAM,
	}
}

func (m *Mbc3) Restore(s MapperSnapshot) {
	m.rombank = byte(s.ROMBank)
	m.rambank = s.RAMBank
	m.enableRAM = s.EnableRAM
	m.setRambank()
	m.setRombank()
}
