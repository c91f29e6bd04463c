package daemon

import (
	"bytes"
	"encoding/binary"
)

const iconSize = 16

// calendarIcon builds a 16x16 32-bit ICO: a white page with a red header bar
func calendarIcon() []byte {
	const (
		headerSize = 6
		entrySize  = 16
		infoSize   = 40
	)
	pixels := iconSize * iconSize * 4
	mask := iconSize * 4 // 1bpp rows padded to 32 bits
	imageSize := infoSize + pixels + mask

	var buf bytes.Buffer
	le := binary.LittleEndian

	// ICONDIR
	_ = binary.Write(&buf, le, [3]uint16{0, 1, 1})
	// ICONDIRENTRY
	buf.Write([]byte{iconSize, iconSize, 0, 0})
	_ = binary.Write(&buf, le, [2]uint16{1, 32})
	_ = binary.Write(&buf, le, [2]uint32{uint32(imageSize), headerSize + entrySize})

	// BITMAPINFOHEADER; height counts XOR and AND masks
	_ = binary.Write(&buf, le, struct {
		Size                  uint32
		Width, Height         int32
		Planes, BitCount      uint16
		Compression, SizeImg  uint32
		XPels, YPels          int32
		ClrUsed, ClrImportant uint32
	}{infoSize, iconSize, iconSize * 2, 1, 32, 0, uint32(pixels + mask), 0, 0, 0, 0})

	// Rows are stored bottom-up as BGRA
	for y := iconSize - 1; y >= 0; y-- {
		for x := 0; x < iconSize; x++ {
			switch {
			case x == 0 || x == iconSize-1 || y == iconSize-1:
				buf.Write([]byte{0x40, 0x40, 0x40, 0xff})
			case y < 5:
				buf.Write([]byte{0x2f, 0x2f, 0xd3, 0xff})
			case (x+y)%4 == 0 && y > 6:
				buf.Write([]byte{0xd2, 0x76, 0x19, 0xff})
			default:
				buf.Write([]byte{0xff, 0xff, 0xff, 0xff})
			}
		}
	}
	buf.Write(make([]byte, mask))

	return buf.Bytes()
}
