package escpos

// Control bytes used across the command table.
const (
	ESC byte = 0x1B
	GS  byte = 0x1D
	LF  byte = 0x0A
	CR  byte = 0x0D
)

// Command tokens for ESC/POS thermal printers. Alignment and size
// tokens are stateful: they persist until the next mode token or a
// reset via Init or NormalSize.
var (
	Init           = []byte{ESC, '@'}
	BoldOn         = []byte{ESC, 'E', 0x01}
	BoldOff        = []byte{ESC, 'E', 0x00}
	DoubleHeightOn = []byte{ESC, '!', 0x10}
	DoubleWidthOn  = []byte{ESC, '!', 0x20}
	NormalSize     = []byte{ESC, '!', 0x00}
	AlignLeft      = []byte{ESC, 'a', 0x00}
	AlignCenter    = []byte{ESC, 'a', 0x01}
	AlignRight     = []byte{ESC, 'a', 0x02}
	CutPaper       = []byte{GS, 'V', 'B', 0x00}
)
