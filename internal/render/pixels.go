package render

import "image/color"

// fillPaletteRGBA converts palette indices into RGBA pixels in buf. Indices
// past the end of the palette use its last entry. When the palette is empty
// the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		col := palette[idx]
		px := buf[i*4 : i*4+4]
		px[0], px[1], px[2], px[3] = col.R, col.G, col.B, col.A
	}
}

// tintRGBA blends a translucent tint over every pixel whose weight is
// non-zero. weights are in [0, 1] and scale the tint's alpha.
func tintRGBA(buf []byte, weights []float64, tint color.RGBA) {
	for i, w := range weights {
		if w <= 0 {
			clear(buf[i*4 : i*4+4])
			continue
		}
		if w > 1 {
			w = 1
		}
		a := uint8(float64(tint.A) * w)
		// premultiplied alpha
		px := buf[i*4 : i*4+4]
		px[0] = uint8(uint16(tint.R) * uint16(a) / 255)
		px[1] = uint8(uint16(tint.G) * uint16(a) / 255)
		px[2] = uint8(uint16(tint.B) * uint16(a) / 255)
		px[3] = a
	}
}
