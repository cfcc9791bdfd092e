package theme

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type RGB [3]uint8

type Palette struct {
	Name   string
	Colors []RGB
}

// Launchpad mk1 LEDs mix red and green at four levels each. The
// default palette carries the terminal equivalents for (red, green)
// pairs indexed red*4+green, so the mirror shows roughly what the
// hardware shows.
func Default() *Palette {
	p := &Palette{Name: "launchpad-mk1"}
	for r := 0; r < 4; r++ {
		for g := 0; g < 4; g++ {
			p.Colors = append(p.Colors, RGB{uint8(r * 85), uint8(g * 85), 0})
		}
	}
	return p
}

// LED returns the terminal color for a red/green brightness pair
func (p *Palette) LED(red, green uint8) RGB {
	if red > 3 {
		red = 3
	}
	if green > 3 {
		green = 3
	}
	idx := int(red)*4 + int(green)
	if idx >= len(p.Colors) {
		return RGB{255, 255, 255}
	}
	return p.Colors[idx]
}

// Lookup maps a normalized 0-1 value onto the palette
func (p *Palette) Lookup(norm float64) RGB {
	if len(p.Colors) == 0 {
		return RGB{}
	}
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	idx := int(norm * float64(len(p.Colors)-1))
	return p.Colors[idx]
}

// LoadGPL reads a GIMP palette file for users who want the mirror in
// different colors than the hardware
func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := &Palette{}
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "Name:") {
			p.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
			continue
		}

		// Skip headers and comments
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) >= 3 {
			r, err1 := strconv.Atoi(fields[0])
			g, err2 := strconv.Atoi(fields[1])
			b, err3 := strconv.Atoi(fields[2])
			if err1 == nil && err2 == nil && err3 == nil {
				p.Colors = append(p.Colors, RGB{uint8(r), uint8(g), uint8(b)})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("no colors found in palette %s", path)
	}
	return p, nil
}
