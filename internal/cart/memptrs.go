package cart

// window flags, OR'd together to describe what a mapped RAM window allows.
const (
	ReadEnable byte = 1 << iota
	WriteEnable
	RTCEnable
)

// bankWindow is a (base offset, length, flags) record into one of the
// backing arrays MemPtrs owns. offset/length address into the owning
// array directly; flags is only meaningful for the RAM window.
type bankWindow struct {
	offset int
	length int
	flags  byte
}

// MemPtrs owns the ROM image, cartridge-RAM image, and VRAM/WRAM arrays,
// and publishes the currently-mapped bank windows a CPU's fast read path
// would dereference directly. Mapper variants drive the window via
// SetROMBank/SetROMBank0/SetRAMBank; RTC/TX never touch MemPtrs directly.
type MemPtrs struct {
	rom  []byte
	ram  []byte
	vram []byte
	wram []byte

	rombank  bankWindow // 0x4000-0x7FFF
	rombank0 bankWindow // 0x0000-0x3FFF
	rambank  bankWindow // 0xA000-0xBFFF

	romBanks int
	ramBanks int
}

// Reset reallocates the backing arrays for newly computed bank counts.
// ROM is padded with 0xFF by the caller (Cartridge.LoadROM), not here.
func (mp *MemPtrs) Reset(romBanks, ramBanks, wramBanks int) {
	mp.romBanks = romBanks
	mp.ramBanks = ramBanks
	mp.rom = make([]byte, romBanks*0x4000)
	mp.ram = make([]byte, ramBanks*0x2000)
	mp.vram = make([]byte, wramBanksToVRAMSize(wramBanks))
	mp.wram = make([]byte, wramBanks*0x1000)

	mp.rombank0 = bankWindow{offset: 0, length: 0x4000}
	mp.rombank = bankWindow{offset: 0x4000, length: 0x4000}
	mp.rambank = bankWindow{}
}

// wramBanksToVRAMSize sizes VRAM from the same CGB/DMG toggle as WRAM
// bank count (2 WRAM banks => DMG => 1 VRAM bank of 8KiB; 8 WRAM banks
// => CGB => 2 VRAM banks of 8KiB).
func wramBanksToVRAMSize(wramBanks int) int {
	if wramBanks > 2 {
		return 2 * 0x2000
	}
	return 0x2000
}

// ROM returns the immutable ROM image.
func (mp *MemPtrs) ROM() []byte { return mp.rom }

// RAM returns the mutable cartridge-RAM image.
func (mp *MemPtrs) RAM() []byte { return mp.ram }

// VRAM returns the video RAM image.
func (mp *MemPtrs) VRAM() []byte { return mp.vram }

// WRAM returns the working RAM image.
func (mp *MemPtrs) WRAM() []byte { return mp.wram }

func (mp *MemPtrs) ROMBanks() int { return mp.romBanks }
func (mp *MemPtrs) RAMBanks() int { return mp.ramBanks }

// SetROMBank aims the 0x4000-0x7FFF window at ROM bank `bank`.
func (mp *MemPtrs) SetROMBank(bank int) {
	mp.rombank = bankWindow{offset: bank * 0x4000, length: 0x4000}
}

// SetROMBank0 aims the 0x0000-0x3FFF window at ROM bank `bank` (default 0).
func (mp *MemPtrs) SetROMBank0(bank int) {
	mp.rombank0 = bankWindow{offset: bank * 0x4000, length: 0x4000}
}

// SetRAMBank aims the 0xA000-0xBFFF window at RAM bank `bank` with the
// given access flags. RTCEnable shadows reads/writes in that window to
// the RTC/TPP1 register path instead of the RAM array.
func (mp *MemPtrs) SetRAMBank(flags byte, bank int) {
	mp.rambank = bankWindow{offset: bank * 0x2000, length: 0x2000, flags: flags}
}

// ReadROM reads the CPU-visible byte at addr in 0x0000-0x7FFF.
func (mp *MemPtrs) ReadROM(addr uint16) byte {
	if addr < 0x4000 {
		return readWindow(mp.rom, mp.rombank0, addr)
	}
	return readWindow(mp.rom, mp.rombank, addr-0x4000)
}

// RAMWindowFlags reports the access flags currently mapped into 0xA000-0xBFFF.
func (mp *MemPtrs) RAMWindowFlags() byte { return mp.rambank.flags }

// ReadRAM reads the CPU-visible byte at addr in 0xA000-0xBFFF, assuming
// the caller has already checked RAMWindowFlags for RTCEnable and routed
// accordingly; it returns 0xFF when the window is not read-enabled.
func (mp *MemPtrs) ReadRAM(addr uint16) byte {
	if mp.rambank.flags&ReadEnable == 0 {
		return 0xFF
	}
	return readWindow(mp.ram, mp.rambank, addr-0xA000)
}

// WriteRAM writes to 0xA000-0xBFFF if the window is write-enabled.
func (mp *MemPtrs) WriteRAM(addr uint16, value byte) {
	if mp.rambank.flags&WriteEnable == 0 {
		return
	}
	writeWindow(mp.ram, mp.rambank, addr-0xA000, value)
}

func readWindow(backing []byte, w bankWindow, off uint16) byte {
	idx := w.offset + int(off)
	if idx < 0 || idx >= len(backing) {
		return 0xFF
	}
	return backing[idx]
}

func writeWindow(backing []byte, w bankWindow, off uint16, value byte) {
	idx := w.offset + int(off)
	if idx < 0 || idx >= len(backing) {
		return
	}
	backing[idx] = value
}
