package cart

// tpp1RolloverPeriod is 1792 days (256 weeks) in seconds: the point past
// which the W/H/M/S decomposition wraps and the sticky overflow flag is
// set.
const tpp1RolloverPeriod = 1792 * 86400

// Tpp1Ext ("TX") models the TPP1 cartridge's clock, rumble, and
// multi-mode register window. It is named Tpp1Ext, not Tpp1, to keep it
// distinct from the Tpp1 mapper variant that drives it.
type Tpp1Ext struct {
	now func() int64

	baseTime int64
	haltTime int64

	rombank uint16
	rambank byte

	dataW byte
	dataH byte
	dataM byte
	dataS byte

	rumble byte
	curmap byte

	features byte
	enabled  bool
	running  bool
	overflow bool
}

// NewTpp1Ext constructs a TX driven by the given host-time callback.
func NewTpp1Ext(now func() int64) *Tpp1Ext {
	return &Tpp1Ext{now: now, rombank: 1}
}

func (t *Tpp1Ext) epochNow() int64 {
	if t.now == nil {
		return 0
	}
	return t.now()
}

// Set (re)initializes TX, clearing all clock, rumble and register state.
// Cartridge.LoadROM builds a fresh TX only for a TPP1 cartridge and calls
// Set(true, header[0x0153]) on it; other loads leave the Cartridge with no TX.
func (t *Tpp1Ext) Set(enabled bool, features byte) {
	*t = Tpp1Ext{now: t.now, rombank: 1, enabled: enabled, features: features, running: enabled}
}

func (t *Tpp1Ext) Enabled() bool   { return t.enabled }
func (t *Tpp1Ext) Features() byte  { return t.features }
func (t *Tpp1Ext) Curmap() byte    { return t.curmap }
func (t *Tpp1Ext) SetMap(m byte)   { t.curmap = m }
func (t *Tpp1Ext) SetRombank(b uint16) { t.rombank = b }
func (t *Tpp1Ext) SetRambank(b byte)   { t.rambank = b }

// Latch computes tmp = (running ? now() : halt_time) - base_time, rolls
// base_time forward by whole rollover periods while tmp is at least one
// (setting the sticky overflow flag), then decomposes the remainder into
// W/H/M/S.
func (t *Tpp1Ext) Latch() {
	var tmp int64
	if t.running {
		tmp = t.epochNow() - t.baseTime
	} else {
		tmp = t.haltTime - t.baseTime
	}

	for tmp >= tpp1RolloverPeriod {
		t.baseTime += tpp1RolloverPeriod
		tmp -= tpp1RolloverPeriod
		t.overflow = true
	}
	if tmp < 0 {
		tmp = 0
	}

	t.dataW = byte(tmp / 604800)
	tmp %= 604800

	t.dataH = byte(tmp/86400) << 5
	tmp %= 86400
	t.dataH |= byte(tmp / 3600)
	tmp %= 3600

	t.dataM = byte(tmp / 60)
	tmp %= 60

	t.dataS = byte(tmp)
}

// Settime re-anchors base_time from the current W/H/M/S registers,
// inverting Latch's decomposition.
func (t *Tpp1Ext) Settime() {
	if t.running {
		t.baseTime = t.epochNow()
	} else {
		t.baseTime = t.haltTime
	}
	t.baseTime -= int64(t.dataS) + int64(t.dataM)*60 + int64(t.dataH&0x1F)*3600 +
		int64((t.dataH&0xE0)>>5)*86400 + int64(t.dataW)*604800
}

// Halt freezes halt_time at the current host time.
func (t *Tpp1Ext) Halt() {
	if t.running {
		t.haltTime = t.epochNow()
		t.running = false
	}
}

// Resume shifts base_time forward by the halt span.
func (t *Tpp1Ext) Resume() {
	if !t.running {
		t.baseTime += t.epochNow() - t.haltTime
		t.running = true
	}
}

// ResetOverflow clears the sticky overflow flag (MR3 command 0x14).
func (t *Tpp1Ext) ResetOverflow() { t.overflow = false }

// SetRumble stores the rumble amount when features bit 0 is set; with bit
// 1 also set the 2-bit amount is stored as-is, otherwise it is clamped to
// a boolean 0/1. There is no actuator wired up here; the value is tracked
// purely as cartridge state.
func (t *Tpp1Ext) SetRumble(amount byte) {
	if t.features&1 == 0 {
		return
	}
	if t.features&2 != 0 {
		t.rumble = amount & 3
	} else if amount > 0 {
		t.rumble = 1
	} else {
		t.rumble = 0
	}
}

// Read returns the byte visible through the RAM window for the given
// curmap personality (0: status registers, 3: clock registers). Other
// curmap values fall through to cartridge RAM, handled by the Tpp1
// mapper variant via MemPtrs, not here.
func (t *Tpp1Ext) Read(p uint16) byte {
	switch t.curmap {
	case 0:
		switch p & 3 {
		case 0:
			return byte(t.rombank & 0xFF)
		case 1:
			return byte(t.rombank >> 8)
		case 2:
			return t.rambank
		case 3:
			var v byte = 0xF0 | (t.rumble & 3)
			if t.running {
				v |= 1 << 2
			}
			if t.overflow {
				v |= 1 << 3
			}
			return v
		}
	case 3:
		switch p & 3 {
		case 0:
			return t.dataW
		case 1:
			return t.dataH
		case 2:
			return t.dataM
		case 3:
			return t.dataS
		}
	}
	return 0xFF
}

// Write assigns W/H/M/S from p&3; only accepted when curmap==3.
func (t *Tpp1Ext) Write(p uint16, data byte) {
	if t.curmap != 3 {
		return
	}
	switch p & 3 {
	case 0:
		t.dataW = data
	case 1:
		t.dataH = data
	case 2:
		t.dataM = data
	case 3:
		t.dataS = data
	}
}

// SetBaseTime/BaseTime roll absolute time into/out of a portable offset
// for save-data.
func (t *Tpp1Ext) SetBaseTime(v int64) { t.baseTime = v }
func (t *Tpp1Ext) BaseTime() int64     { return t.baseTime }

// Snapshot/Restore serialize TX's full register state for save states.
func (t *Tpp1Ext) Snapshot() TPP1Snapshot {
	return TPP1Snapshot{
		BaseTime: t.baseTime,
		HaltTime: t.haltTime,
		DataW:    t.dataW,
		DataH:    t.dataH,
		DataM:    t.dataM,
		DataS:    t.dataS,
		Rumble:   t.rumble,
		Curmap:   t.curmap,
		Features: t.features,
		Enabled:  t.enabled,
		Running:  t.running,
		Overflow: t.overflow,
	}
}

func (t *Tpp1Ext) Restore(s TPP1Snapshot) {
	t.baseTime = s.BaseTime
	t.haltTime = s.HaltTime
	t.dataW = s.DataW
	t.dataH = s.DataH
	t.dataM = s.DataM
	t.dataS = s.DataS
	t.rumble = s.Rumble
	t.curmap = s.Curmap
	t.features = s.Features
	t.enabled = s.Enabled
	t.running = s.Running
	t.overflow = s.Overflow
}
