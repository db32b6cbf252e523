package cart

// Mapper is the small, stable interface every MBC variant implements:
// control-register writes, the bank-placement predicate debuggers use to
// assert view consistency, and the snapshot hooks.
type Mapper interface {
	// RomWrite handles a CPU write in 0x0000-0x7FFF.
	RomWrite(addr uint16, data byte)
	// ReadRAM/WriteRAM handle CPU accesses in 0xA000-0xBFFF. Most variants
	// delegate straight to MemPtrs; Mbc3 and Tpp1 intercept when their
	// RTC/TX window is active.
	ReadRAM(addr uint16) byte
	WriteRAM(addr uint16, data byte)
	// CanMapBankAt reports whether `bank` could legally appear at `addr`
	// under this variant's addressing scheme.
	CanMapBankAt(addr uint16, bank int) bool
	// Snapshot/Restore serialize the variant's registers.
	Snapshot() MapperSnapshot
	Restore(s MapperSnapshot)
}

// region decodes the 2-bit selector most variants switch on:
// {0000-1FFF, 2000-3FFF, 4000-5FFF, 6000-7FFF}.
func region(addr uint16) int {
	return int(addr>>13) & 3
}

// adjustRombank applies the "forbidden bank" hardware aliasing rule: a
// selector whose masked low bits are all zero is forced to the next odd
// bank (bit 0 set). mask selects which low bits participate (0x1F for
// MBC1's 5-bit bank, 0x3F for HuC1's 6-bit bank, 0x7F for MBC3's 7-bit
// bank, 0xF for the in-subcart bank of MBC1-Multi64).
func adjustRombank(bank, mask int) int {
	if bank&mask == 0 {
		return bank | 1
	}
	return bank
}

// defaultCanMapBankAt implements the DefaultMbc predicate every variant
// but Mbc1Multi64 uses: bank 0 only ever appears in the low window.
func defaultCanMapBankAt(addr uint16, bank int) bool {
	return (addr < 0x4000) == (bank == 0)
}

func enableFlags(enable bool) byte {
	if enable {
		return ReadEnable | WriteEnable
	}
	return 0
}
