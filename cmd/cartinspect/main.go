package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/dhollinger/gbcartmapper/internal/cart"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM (.gb/.gbc)")
	savePath := flag.String("save", "", "optional battery save file to load after the header report")
	exportPath := flag.String("export", "", "write the current save-data blob to this path and exit")
	forceDmg := flag.Bool("forcedmg", false, "treat the cartridge as DMG even if the CGB flag is set")
	multicart := flag.Bool("multicart", false, "enable the MBC1-Multi64 heuristic for 1 MiB, no-RAM MBC1 carts")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("-rom is required")
	}
	rom, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("read rom: %v", err)
	}

	c := cart.NewCartridge(func() int64 { return time.Now().Unix() })
	logLine, err := c.LoadROM(rom, *forceDmg, *multicart)
	if err != nil {
		log.Fatalf("%s: %v", logLine, err)
	}
	log.Printf("%s", logLine)

	h := c.Header()
	log.Printf("title=%q kind=%s rombanks=%d", h.Title, c.Kind(), h.ROMBanks)
	if _, n := c.GetMemoryArea(cart.MemoryRAM); n > 0 {
		log.Printf("cartridge RAM: %d bytes", n)
	}

	if *savePath != "" {
		data, err := os.ReadFile(*savePath)
		if err != nil {
			log.Fatalf("read save: %v", err)
		}
		if err := c.LoadSaveData(data); err != nil {
			log.Fatalf("load save: %v", err)
		}
		log.Printf("loaded save data from %s (%d bytes)", *savePath, len(data))
	}

	if *exportPath != "" {
		data := c.SaveSaveData()
		if err := os.WriteFile(*exportPath, data, 0o644); err != nil {
			log.Fatalf("write save: %v", err)
		}
		log.Printf("exported save data to %s (%d bytes)", *exportPath, len(data))
	}
}
