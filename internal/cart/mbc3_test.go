package cart

import "testing"

func TestMbc3_RTCLatchAndRead(t *testing.T) {
	mp := &MemPtrs{}
	mp.Reset(4, 1, 2)
	var now int64 = 1000
	rtc := NewRTC(func() int64 { return now })
	rtc.SetBaseTime(1000)
	m := NewMbc3(mp, rtc)

	m.RomWrite(0x0000, 0x0A) // RAM enable
	m.RomWrite(0x4000, 0x08) // select RTC seconds register

	now = 1000 + 37
	m.RomWrite(0x6000, 0x00)
	m.RomWrite(0x6000, 0x01) // latch edge

	if got := m.ReadRAM(0xA000); got != 37 {
		t.Fatalf("latched seconds = %d, want 37", got)
	}
}

func TestMbc3_AdjustedBankNeverZeroMod0x80(t *testing.T) {
	mp := &MemPtrs{}
	mp.Reset(128, 0, 2)
	m := NewMbc3(mp, nil)
	for data := 0; data < 0x80; data++ {
		m.RomWrite(0x2000, byte(data))
		bank := mp.rombank.offset / 0x4000
		if bank%0x80 == 0 {
			t.Fatalf("effective bank %d is 0 mod 0x80 after write %#02x", bank, data)
		}
	}
}

func TestMbc3_WithoutRTCBehavesAsPlainBanking(t *testing.T) {
	mp := &MemPtrs{}
	mp.Reset(4, 1, 2)
	m := NewMbc3(mp, nil)

	m.RomWrite(0x0000, 0x0A)
	m.RomWrite(0x4000, 0x08) // would select RTC registers, but rtc is nil
	m.WriteRAM(0xA000, 0x55)
	if got := m.ReadRAM(0xA000); got != 0x55 {
		t.Fatalf("RAM read without RTC = %#02x, want 0x55", got)
	}
}
