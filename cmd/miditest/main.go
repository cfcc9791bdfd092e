package main

import (
	"fmt"
	"os"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"lparp/midi"
)

func main() {
	defer gomidi.CloseDriver()

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "leds":
		testLEDs()
	case "clear":
		clearBoard()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Launchpad mk1 test scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list   - List all MIDI ports")
	fmt.Println("  leds   - Sweep the grid through the LED colors")
	fmt.Println("  clear  - Turn every LED off")
}

func listPorts() {
	ins, outs := midi.ListPorts()
	fmt.Println("=== MIDI Input Ports ===")
	for i, name := range ins {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range outs {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func openPad() *midi.Device {
	dev, err := midi.OpenDevice("launchpad")
	if err != nil {
		fmt.Printf("No Launchpad: %v\n", err)
		os.Exit(1)
	}
	return dev
}

func testLEDs() {
	dev := openPad()
	defer dev.Close()

	fmt.Println("Sweeping rows through red/green mixes...")
	for y := uint8(0); y < 8; y++ {
		red := y % 4
		green := 3 - red
		for x := uint8(0); x < 8; x++ {
			dev.WriteEvent(midi.Event{
				Status:   midi.StatusNote,
				Note:     midi.PadNote(x, y),
				Velocity: midi.Color(red, green),
			})
			time.Sleep(20 * time.Millisecond)
		}
	}

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()

	dev.WriteEvent(midi.Event{Status: midi.StatusControl})
	fmt.Println("Done!")
}

func clearBoard() {
	dev := openPad()
	defer dev.Close()
	dev.WriteEvent(midi.Event{Status: midi.StatusControl})
	fmt.Println("Cleared")
}
