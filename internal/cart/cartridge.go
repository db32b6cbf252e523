package cart

import "fmt"

// Cartridge is the top-level façade this package exposes: it owns the
// backing memory arrays, the classified mapper, and whichever of RTC/TX
// the loaded ROM wired up, and answers the load/save/memory-area/
// snapshot operations the rest of an emulator would call.
type Cartridge struct {
	mp  *MemPtrs
	rtc *RTC
	tx  *Tpp1Ext

	mapper Mapper
	kind   Kind
	header *Header

	hasBattery bool
	hasClock   bool

	now func() int64
}

// NewCartridge constructs an empty Cartridge. now supplies host wall-clock
// seconds to any RTC/TX a later LoadROM wires up; nil is legal, and leaves
// any RTC/TX frozen at its zero base_time.
func NewCartridge(now func() int64) *Cartridge {
	return &Cartridge{mp: &MemPtrs{}, now: now}
}

func wramBankCount(header *Header, forceDmg bool) int {
	if !forceDmg && header.CGBFlag&0x80 != 0 {
		return 8
	}
	return 2
}

// LoadROM classifies and loads a ROM image. It returns the single
// human-readable classification line callers should log, alongside any
// load error: a MalformedHeaderError or UnsupportedMapperError leaves
// the Cartridge in its prior state. multicartCompat enables the MBC1
// -> MBC1-Multi64 reclassification heuristic for 1 MiB, no-RAM MBC1 carts.
func (c *Cartridge) LoadROM(data []byte, forceDmg, multicartCompat bool) (string, error) {
	kind, logLine, err := classify(data)
	if err != nil {
		return logLine, err
	}

	header, err := ParseHeader(data)
	if err != nil {
		return logLine, err
	}
	if !HeaderChecksumOK(data) {
		logLine += " (header checksum mismatch)"
	}

	rombanks := sizeROM(len(data))
	rambanks := sizeRAM(kind, data)
	if kind == KindMBC1 && rambanks == 0 && rombanks == 64 && multicartCompat {
		kind = KindMBC1Multi64
	}

	mp := &MemPtrs{}
	mp.Reset(rombanks, rambanks, wramBankCount(header, forceDmg))
	rom := mp.ROM()
	for i := range rom {
		rom[i] = 0xFF
	}
	copy(rom, data)

	c.mp = mp
	c.header = header
	c.kind = kind
	c.hasBattery = hasBattery(kind, data)
	c.hasClock = hasRTC(kind, data)
	c.rtc = nil
	c.tx = nil

	switch kind {
	case KindPlain:
		c.mapper = NewPlain(mp)
	case KindMBC1:
		c.mapper = NewMbc1(mp)
	case KindMBC1Multi64:
		c.mapper = NewMbc1Multi64(mp)
	case KindMBC2:
		c.mapper = NewMbc2(mp)
	case KindMBC3:
		if c.hasClock {
			c.rtc = NewRTC(c.now)
		}
		c.mapper = NewMbc3(mp, c.rtc)
	case KindHuC1:
		c.mapper = NewHuC1(mp)
	case KindMBC5:
		c.mapper = NewMbc5(mp)
	case KindTPP1:
		c.tx = NewTpp1Ext(c.now)
		c.tx.Set(true, header.TPP1Features)
		c.mapper = NewTpp1(mp, c.tx)
	default:
		return logLine, &MalformedHeaderError{Reason: fmt.Sprintf("unhandled kind %v", kind)}
	}

	return logLine, nil
}

// clockBaseTimeBytes is the width of the little-endian base_time field
// appended to save data when a clock is present: a 32-bit absolute
// epoch, matching the host callback's own width.
const clockBaseTimeBytes = 4

// SaveSaveDataLength reports the size SaveSaveData will produce: battery
// RAM and the clock epoch are independent terms, so a clock-bearing cart
// with no battery still reports the 4-byte epoch on its own.
func (c *Cartridge) SaveSaveDataLength() int {
	var n int
	if c.hasBattery {
		n += len(c.mp.RAM())
	}
	if c.hasClock {
		n += clockBaseTimeBytes
	}
	return n
}

// SaveSaveData serializes battery RAM, if present, followed by a 4-byte
// little-endian base_time epoch for a cart with a clock, whether or not
// that clock is also battery-backed.
func (c *Cartridge) SaveSaveData() []byte {
	n := c.SaveSaveDataLength()
	if n == 0 {
		return nil
	}
	out := make([]byte, n)

	var off int
	if c.hasBattery {
		off = copy(out, c.mp.RAM())
	}
	if !c.hasClock {
		return out
	}
	var baseTime int64
	switch {
	case c.rtc != nil:
		baseTime = c.rtc.BaseTime()
	case c.tx != nil:
		baseTime = c.tx.BaseTime()
	}
	putLittleEndianUint32(out[off:], uint32(baseTime))
	return out
}

// LoadSaveData restores battery RAM (if present) and the clock epoch (if
// present) from previously exported save data. Short or oversized buffers
// are truncated to fit rather than rejected (never-fail runtime).
func (c *Cartridge) LoadSaveData(data []byte) error {
	var off int
	if c.hasBattery {
		ram := c.mp.RAM()
		off = len(ram)
		copy(ram, data)
	}
	if !c.hasClock || len(data) < off+clockBaseTimeBytes {
		return nil
	}
	baseTime := int64(getLittleEndianUint32(data[off:]))
	switch {
	case c.rtc != nil:
		c.rtc.SetBaseTime(baseTime)
	case c.tx != nil:
		c.tx.SetBaseTime(baseTime)
	}
	return nil
}

func putLittleEndianUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func getLittleEndianUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// Memory area identifiers for GetMemoryArea, numbered for debugger use.
const (
	MemoryVRAM = 0
	MemoryROM  = 1
	MemoryWRAM = 2
	MemoryRAM  = 3
)

// GetMemoryArea returns the backing array and its size for one of the four
// memory kinds a debugger or snapshot tool might want to inspect directly.
func (c *Cartridge) GetMemoryArea(id int) ([]byte, int) {
	switch id {
	case MemoryVRAM:
		return c.mp.VRAM(), len(c.mp.VRAM())
	case MemoryROM:
		return c.mp.ROM(), len(c.mp.ROM())
	case MemoryWRAM:
		return c.mp.WRAM(), len(c.mp.WRAM())
	case MemoryRAM:
		return c.mp.RAM(), len(c.mp.RAM())
	default:
		return nil, 0
	}
}

// Kind reports the classified mapper family, after any multicart
// reclassification performed by LoadROM.
func (c *Cartridge) Kind() Kind { return c.kind }

// Header returns the decoded ROM header, or nil before the first LoadROM.
func (c *Cartridge) Header() *Header { return c.header }

// RomWrite dispatches a CPU write in 0x0000-0x7FFF to the active mapper.
func (c *Cartridge) RomWrite(addr uint16, data byte) { c.mapper.RomWrite(addr, data) }

// ReadROM reads the CPU-visible byte at addr in 0x0000-0x7FFF.
func (c *Cartridge) ReadROM(addr uint16) byte { return c.mp.ReadROM(addr) }

// ReadRAM/WriteRAM dispatch CPU accesses in 0xA000-0xBFFF to the active
// mapper, which may shadow them to an RTC/TX register window.
func (c *Cartridge) ReadRAM(addr uint16) byte     { return c.mapper.ReadRAM(addr) }
func (c *Cartridge) WriteRAM(addr uint16, d byte) { c.mapper.WriteRAM(addr, d) }

// Snapshot captures the full mapper/RTC/TX/RAM state for a save state.
func (c *Cartridge) Snapshot() Snapshot {
	s := Snapshot{
		Mapper: c.mapper.Snapshot(),
		RAM:    append([]byte(nil), c.mp.RAM()...),
	}
	if c.rtc != nil {
		s.RTC = c.rtc.Snapshot()
	}
	if c.tx != nil {
		s.TPP1 = c.tx.Snapshot()
	}
	return s
}

// Restore reinstates a Snapshot produced by this Cartridge's Snapshot.
func (c *Cartridge) Restore(s Snapshot) {
	c.mapper.Restore(s.Mapper)
	if c.rtc != nil {
		c.rtc.Restore(s.RTC)
	}
	if c.tx != nil {
		c.tx.Restore(s.TPP1)
	}
	copy(c.mp.RAM(), s.RAM)
}
