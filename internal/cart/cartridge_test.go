package cart

import "testing"

func buildROMOfKind(cartType byte, ramSizeCode byte, size int) []byte {
	return buildROM("TEST", cartType, 0x00, ramSizeCode, size)
}

// buildTPP1ROM stamps the TPP1 signature bytes and features byte on top of
// an otherwise-ordinary header; features bit 2 is the clock, bit 3 the
// battery.
func buildTPP1ROM(features byte, size int) []byte {
	rom := buildROM("TEST", 0x00, 0x00, 0x00, size)
	rom[0x0147] = 0xBC
	rom[0x0149] = 0xC1
	rom[0x014A] = 0x65
	rom[0x0152] = 0x00
	rom[0x0153] = features

	var hsum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		hsum = hsum - rom[addr] - 1
	}
	rom[0x014D] = hsum
	return rom
}

func TestCartridge_LoadPlainROM(t *testing.T) {
	rom := buildROMOfKind(0x00, 0x00, 32*1024)
	c := NewCartridge(nil)

	line, err := c.LoadROM(rom, false, false)
	if err != nil {
		t.Fatalf("LoadROM error: %v", err)
	}
	if c.Kind() != KindPlain {
		t.Fatalf("Kind() = %v, want Plain", c.Kind())
	}
	if line == "" {
		t.Fatalf("expected a non-empty classification line")
	}
}

func TestCartridge_MBC1Multi64Detection(t *testing.T) {
	rom := buildROMOfKind(0x01, 0x00, 64*0x4000) // MBC1, no RAM, 1 MiB
	c := NewCartridge(nil)

	if _, err := c.LoadROM(rom, false, true); err != nil {
		t.Fatalf("LoadROM error: %v", err)
	}
	if c.Kind() != KindMBC1Multi64 {
		t.Fatalf("Kind() = %v, want MBC1-Multi64 with multicart_compat", c.Kind())
	}

	c2 := NewCartridge(nil)
	if _, err := c2.LoadROM(rom, false, false); err != nil {
		t.Fatalf("LoadROM error: %v", err)
	}
	if c2.Kind() != KindMBC1 {
		t.Fatalf("Kind() = %v, want plain MBC1 without multicart_compat", c2.Kind())
	}
}

func TestCartridge_UnsupportedMapperRejected(t *testing.T) {
	rom := buildROMOfKind(0x0B, 0x00, 32*1024) // MM01
	c := NewCartridge(nil)

	_, err := c.LoadROM(rom, false, false)
	if err == nil {
		t.Fatalf("expected UnsupportedMapperError, got nil")
	}
	if _, ok := err.(*UnsupportedMapperError); !ok {
		t.Fatalf("error type = %T, want *UnsupportedMapperError", err)
	}
}

func TestCartridge_MalformedHeaderShortROM(t *testing.T) {
	c := NewCartridge(nil)
	_, err := c.LoadROM(make([]byte, 0x100), false, false)
	if _, ok := err.(*MalformedHeaderError); !ok {
		t.Fatalf("error type = %T, want *MalformedHeaderError", err)
	}
}

func TestCartridge_SaveRoundTripWithRTC(t *testing.T) {
	rom := buildROMOfKind(0x10, 0x02, 4*0x4000) // MBC3+TIMER+RAM+BATTERY
	c := NewCartridge(func() int64 { return 5000 })
	if _, err := c.LoadROM(rom, false, false); err != nil {
		t.Fatalf("LoadROM error: %v", err)
	}

	c.RomWrite(0x0000, 0x0A) // RAM enable
	c.RomWrite(0x4000, 0x00) // select RAM bank 0 (not RTC range)
	for i := 0; i < 16; i++ {
		c.WriteRAM(0xA000+uint16(i), byte(i*7))
	}

	saved := c.SaveSaveData()
	ram, ramLen := c.GetMemoryArea(MemoryRAM)
	if len(saved) != ramLen+4 {
		t.Fatalf("SaveSaveData length = %d, want %d", len(saved), ramLen+4)
	}

	fresh := NewCartridge(func() int64 { return 5000 })
	if _, err := fresh.LoadROM(rom, false, false); err != nil {
		t.Fatalf("LoadROM error: %v", err)
	}
	if err := fresh.LoadSaveData(saved); err != nil {
		t.Fatalf("LoadSaveData error: %v", err)
	}

	freshRAM, _ := fresh.GetMemoryArea(MemoryRAM)
	for i := range ram {
		if freshRAM[i] != ram[i] {
			t.Fatalf("RAM[%d] = %#02x after round trip, want %#02x", i, freshRAM[i], ram[i])
		}
	}
}

func TestCartridge_SaveDataClockWithoutBattery(t *testing.T) {
	rom := buildTPP1ROM(0x04, 2*0x4000) // clock bit set, battery bit clear
	c := NewCartridge(func() int64 { return 4242 })
	if _, err := c.LoadROM(rom, false, false); err != nil {
		t.Fatalf("LoadROM error: %v", err)
	}
	// base_time starts at zero after LoadROM; give it a distinctive epoch
	// so the restore below can be told apart from a fresh cartridge.
	c.tx.SetBaseTime(4242)

	if n := c.SaveSaveDataLength(); n != 4 {
		t.Fatalf("SaveSaveDataLength = %d, want 4 (clock epoch only, no battery)", n)
	}
	saved := c.SaveSaveData()
	if len(saved) != 4 {
		t.Fatalf("SaveSaveData length = %d, want 4", len(saved))
	}

	fresh := NewCartridge(func() int64 { return 0 })
	if _, err := fresh.LoadROM(rom, false, false); err != nil {
		t.Fatalf("LoadROM error: %v", err)
	}
	if err := fresh.LoadSaveData(saved); err != nil {
		t.Fatalf("LoadSaveData error: %v", err)
	}
	if got := fresh.tx.BaseTime(); got != 4242 {
		t.Fatalf("restored base_time = %d, want 4242", got)
	}
}

func TestCartridge_SnapshotRoundTrip(t *testing.T) {
	rom := buildROMOfKind(0x01, 0x02, 8*0x4000) // MBC1 with RAM
	c := NewCartridge(nil)
	if _, err := c.LoadROM(rom, false, false); err != nil {
		t.Fatalf("LoadROM error: %v", err)
	}

	c.RomWrite(0x0000, 0x0A)
	c.RomWrite(0x2000, 0x03)
	c.WriteRAM(0xA000, 0x99)

	snap := c.Snapshot()

	c.RomWrite(0x2000, 0x05)
	c.WriteRAM(0xA000, 0x11)

	c.Restore(snap)

	if got := c.ReadRAM(0xA000); got != 0x99 {
		t.Fatalf("RAM after restore = %#02x, want 0x99", got)
	}
	if got := c.ReadROM(0x4000); got != rom[3*0x4000] {
		t.Fatalf("ROM window after restore does not reflect bank 3")
	}
}

func TestCartridge_MemoryAreas(t *testing.T) {
	rom := buildROMOfKind(0x00, 0x00, 32*1024)
	c := NewCartridge(nil)
	if _, err := c.LoadROM(rom, false, false); err != nil {
		t.Fatalf("LoadROM error: %v", err)
	}

	if _, n := c.GetMemoryArea(MemoryROM); n != 2*0x4000 {
		t.Fatalf("ROM area size = %d, want %d", n, 2*0x4000)
	}
	if _, n := c.GetMemoryArea(MemoryVRAM); n == 0 {
		t.Fatalf("VRAM area should be non-empty")
	}
	if _, n := c.GetMemoryArea(99); n != 0 {
		t.Fatalf("unknown memory area id should report size 0")
	}
}
