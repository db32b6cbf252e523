package cart

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	headerStart = 0x0100
	headerEnd   = 0x0153
)

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Kind is the classified mapper family selected from header[0x0147]
// (and, for TPP1, the 0xBC/0xC1/0x65 signature at 0x0147/0x0149/0x014A).
type Kind int

const (
	KindPlain Kind = iota
	KindMBC1
	KindMBC1Multi64
	KindMBC2
	KindMBC3
	KindMBC5
	KindHuC1
	KindTPP1
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "Plain"
	case KindMBC1:
		return "MBC1"
	case KindMBC1Multi64:
		return "MBC1-Multi64"
	case KindMBC2:
		return "MBC2"
	case KindMBC3:
		return "MBC3"
	case KindMBC5:
		return "MBC5"
	case KindHuC1:
		return "HuC1"
	case KindTPP1:
		return "TPP1"
	default:
		return "Unknown"
	}
}

// MalformedHeaderError reports a truncated or structurally invalid header.
type MalformedHeaderError struct {
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed header: %s", e.Reason)
}

// UnsupportedMapperError reports a recognized but unimplemented cartridge type.
type UnsupportedMapperError struct {
	CartType byte
	Name     string
}

func (e *UnsupportedMapperError) Error() string {
	return fmt.Sprintf("unsupported mapper: %s (type=%#02x)", e.Name, e.CartType)
}

// Header is the decoded 0x0100-0x0153 Nintendo header region.
type Header struct {
	Title          string
	CGBFlag        byte
	NewLicensee    string
	SGBFlag        byte
	CartType       byte
	ROMSizeCode    byte
	RAMSizeCode    byte
	Destination    byte
	OldLicensee    byte
	ROMVersion     byte
	HeaderChecksum byte
	GlobalChecksum uint16
	TPP1RAMCode    byte // 0x0152, only meaningful for TPP1
	TPP1Features   byte // 0x0153, only meaningful for TPP1

	// Decoded helpers, for logs only; actual bank counts are recomputed
	// from file size (see sizeROM) and from RAMSizeCode/Kind (see sizeRAM).
	ROMSizeBytes int
	ROMBanks     int
	CartTypeStr  string
}

// ParseHeader decodes the header region. It does not classify the mapper;
// use classify for that (ParseHeader succeeds on any ROM long enough to
// contain a header; classification can still fail on the cart type byte).
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd+1 {
		return nil, &MalformedHeaderError{Reason: "file shorter than 0x154 bytes"}
	}

	rawTitle := rom[0x0134:0x0144]
	title := strings.TrimRight(string(rawTitle), "\x00")

	h := &Header{
		Title:          title,
		CGBFlag:        rom[0x0143],
		NewLicensee:    string(rom[0x0144:0x0146]),
		SGBFlag:        rom[0x0146],
		CartType:       rom[0x0147],
		ROMSizeCode:    rom[0x0148],
		RAMSizeCode:    rom[0x0149],
		Destination:    rom[0x014A],
		OldLicensee:    rom[0x014B],
		ROMVersion:     rom[0x014C],
		HeaderChecksum: rom[0x014D],
		GlobalChecksum: binary.BigEndian.Uint16(rom[0x014E:0x0150]),
		TPP1RAMCode:    rom[0x0152],
		TPP1Features:   rom[0x0153],
	}

	h.ROMSizeBytes, h.ROMBanks = decodeROMSize(h.ROMSizeCode)
	if isTPP1Signature(rom) {
		h.CartTypeStr = "TPP1"
	} else {
		h.CartTypeStr = cartTypeString(h.CartType)
	}

	return h, nil
}

// HeaderChecksumOK verifies the Pan Docs header checksum over 0x0134-0x014C.
func HeaderChecksumOK(rom []byte) bool {
	if len(rom) < 0x014E {
		return false
	}
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum == rom[0x014D]
}

func isTPP1Signature(rom []byte) bool {
	return len(rom) > 0x014A && rom[0x0147] == 0xBC && rom[0x0149] == 0xC1 && rom[0x014A] == 0x65
}

// classify decodes header[0x0147] into a supported Kind, or returns a
// MalformedHeaderError or UnsupportedMapperError. logLine is the single
// human-readable classification line callers should surface.
func classify(rom []byte) (kind Kind, logLine string, err error) {
	if len(rom) < headerEnd+1 {
		return 0, "Wrong data-format, corrupt or unsupported ROM.", &MalformedHeaderError{Reason: "file shorter than 0x154 bytes"}
	}
	if isTPP1Signature(rom) {
		return KindTPP1, "TPP1 ROM loaded.", nil
	}

	switch rom[0x0147] {
	case 0x00:
		return KindPlain, "Plain ROM loaded.", nil
	case 0x01:
		return KindMBC1, "MBC1 ROM loaded.", nil
	case 0x02:
		return KindMBC1, "MBC1 ROM+RAM loaded.", nil
	case 0x03:
		return KindMBC1, "MBC1 ROM+RAM+BATTERY loaded.", nil
	case 0x05:
		return KindMBC2, "MBC2 ROM loaded.", nil
	case 0x06:
		return KindMBC2, "MBC2 ROM+BATTERY loaded.", nil
	case 0x08:
		return KindPlain, "Plain ROM with additional RAM loaded.", nil
	case 0x09:
		return KindPlain, "Plain ROM with additional RAM and Battery loaded.", nil
	case 0x0B, 0x0C, 0x0D:
		return 0, "MM01 ROM not supported.", &UnsupportedMapperError{CartType: rom[0x0147], Name: "MM01"}
	case 0x0F:
		return KindMBC3, "MBC3 ROM+TIMER+BATTERY loaded.", nil
	case 0x10:
		return KindMBC3, "MBC3 ROM+TIMER+RAM+BATTERY loaded.", nil
	case 0x11:
		return KindMBC3, "MBC3 ROM loaded.", nil
	case 0x12:
		return KindMBC3, "MBC3 ROM+RAM loaded.", nil
	case 0x13:
		return KindMBC3, "MBC3 ROM+RAM+BATTERY loaded.", nil
	case 0x15, 0x16, 0x17:
		return 0, "MBC4 ROM not supported.", &UnsupportedMapperError{CartType: rom[0x0147], Name: "MBC4"}
	case 0x19:
		return KindMBC5, "MBC5 ROM loaded.", nil
	case 0x1A:
		return KindMBC5, "MBC5 ROM+RAM loaded.", nil
	case 0x1B:
		return KindMBC5, "MBC5 ROM+RAM+BATTERY loaded.", nil
	case 0x1C:
		return KindMBC5, "MBC5+RUMBLE ROM not supported, mapping as plain MBC5.", nil
	case 0x1D:
		return KindMBC5, "MBC5+RUMBLE+RAM ROM not supported, mapping as plain MBC5.", nil
	case 0x1E:
		return KindMBC5, "MBC5+RUMBLE+RAM+BATTERY ROM not supported, mapping as plain MBC5.", nil
	case 0xFC:
		return 0, "Pocket Camera ROM not supported.", &UnsupportedMapperError{CartType: rom[0x0147], Name: "Pocket Camera"}
	case 0xFD:
		return 0, "Bandai TAMA5 ROM not supported.", &UnsupportedMapperError{CartType: rom[0x0147], Name: "TAMA5"}
	case 0xFE:
		return 0, "HuC3 ROM not supported.", &UnsupportedMapperError{CartType: rom[0x0147], Name: "HuC3"}
	case 0xFF:
		return KindHuC1, "HuC1 ROM+RAM+BATTERY loaded.", nil
	default:
		return 0, "Wrong data-format, corrupt or unsupported ROM.", &MalformedHeaderError{Reason: fmt.Sprintf("unknown cartridge type %#02x", rom[0x0147])}
	}
}

// sizeROM computes rombanks from the file length; the header's own ROM
// size byte (0x0148) is ignored, since it's unreliable on homebrew and
// bootleg cartridges.
func sizeROM(fileLen int) int {
	banks := pow2ceil(fileLen / 0x4000)
	if banks < 2 {
		banks = 2
	}
	return banks
}

func pow2ceil(n int) int {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// sizeRAM computes rambanks from header[0x0149] (or, for TPP1, from
// header[0x0152]), matching libgambatte's loadROM decoding.
func sizeRAM(kind Kind, rom []byte) int {
	if kind == KindTPP1 {
		code := int(rom[0x0152])
		if code == 0 {
			return 0
		}
		shift := code - 1
		if shift > 8 {
			shift = 8
		}
		return 1 << uint(shift)
	}

	switch rom[0x0149] {
	case 0x00:
		if kind == KindMBC2 {
			return 1
		}
		return 0
	case 0x01, 0x02:
		return 1
	case 0x03:
		return 4
	case 0x04:
		return 16
	case 0x05:
		return 16
	default:
		return 16
	}
}

func hasRTC(kind Kind, rom []byte) bool {
	if kind == KindTPP1 {
		return rom[0x0153]&4 != 0
	}
	switch rom[0x0147] {
	case 0x0F, 0x10:
		return true
	default:
		return false
	}
}

func hasBattery(kind Kind, rom []byte) bool {
	if kind == KindTPP1 {
		return rom[0x0153]&8 != 0
	}
	switch rom[0x0147] {
	case 0x03, 0x06, 0x09, 0x0F, 0x10, 0x13, 0x1B, 0x1E, 0xFF:
		return true
	default:
		return false
	}
}

func decodeROMSize(code byte) (size, banks int) {
	switch code {
	case 0x00:
		return 32 * 1024, 2
	case 0x01:
		return 64 * 1024, 4
	case 0x02:
		return 128 * 1024, 8
	case 0x03:
		return 256 * 1024, 16
	case 0x04:
		return 512 * 1024, 32
	case 0x05:
		return 1 * 1024 * 1024, 64
	case 0x06:
		return 2 * 1024 * 1024, 128
	case 0x07:
		return 4 * 1024 * 1024, 256
	case 0x08:
		return 8 * 1024 * 1024, 512
	case 0x52:
		return 1152 * 1024, 72
	case 0x53:
		return 1280 * 1024, 80
	case 0x54:
		return 1536 * 1024, 96
	default:
		return 0, 0
	}
}

func cartTypeString(code byte) string {
	switch code {
	case 0x00, 0x08, 0x09:
		return "ROM ONLY"
	case 0x01, 0x02, 0x03:
		return "MBC1 (variants)"
	case 0x05, 0x06:
		return "MBC2 (variants)"
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return "MBC3 (variants)"
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return "MBC5 (variants)"
	case 0xFF:
		return "HuC1 (variants)"
	default:
		return "Other/unknown"
	}
}
