package midi

// Launchpad mk1 note mapping
// 8x8 Grid:  row-major, 16 notes per row. Row 0 (top) = notes 0-7,
//            row 7 = notes 112-119. Notes 8-15 per row are unused except
//            column 8 (notes 8, 24, ... 120), the round scene buttons.
// Top row:   CC 104-111 (separate control-row messages, not grid notes).

// ControlBase is the CC number of the leftmost control-row button
const ControlBase uint8 = 104

// PadXY decodes a grid note into (column, row).
// Columns 0-7 are pads, column 8 is the scene button strip.
//
//	PadXY(50) -> (2, 3, true)
//	PadXY(200) -> out of range
func PadXY(note uint8) (x, y uint8, ok bool) {
	nx := note
	if nx >= 16 {
		nx = note % 16
	}
	y = note / 16
	if nx > 8 || y > 7 {
		return 0, 0, false
	}
	return nx, y, true
}

// PadNote is the inverse of PadXY for valid coordinates
func PadNote(x, y uint8) uint8 {
	return y*16 + x
}

// Color packs red and green brightness (0-3 each) into a mk1 LED
// velocity byte. The constant 12 keeps the unused copy/clear flags set
// the way the hardware expects. Out-of-range levels fall back to full
// brightness.
func Color(red, green uint8) uint8 {
	if red > 3 || green > 3 {
		return 127
	}
	return 12 | red | 16*green
}
