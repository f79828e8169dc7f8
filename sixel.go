package vtcore

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// SixelImage represents a decoded Sixel image.
type SixelImage struct {
	Width       uint32
	Height      uint32
	Data        []byte // tightly packed RGBA pixel data, premultiplied alpha
	Transparent bool   // whether unreferenced pixels are transparent
}

// sixelParser handles parsing of Sixel data.
type sixelParser struct {
	palette     [256]color.RGBA
	colorIndex  int
	x, y        int
	maxX, maxY  int
	pixels      map[int]map[int]color.RGBA
	transparent bool
}

// ParseSixel parses Sixel DCS data and returns a decoded RGBA image.
// params holds the DCS numeric parameters (P1;P2;P3); data holds the raw
// sixel bytes that followed the 'q' final byte.
func ParseSixel(params []int64, data []byte) (*SixelImage, error) {
	p := &sixelParser{
		pixels:     make(map[int]map[int]color.RGBA),
		colorIndex: 0,
	}

	p.initDefaultPalette()

	// P1: pixel aspect ratio numerator (ignored).
	// P2: background select (0=device default, 1=no change, 2=set to color 0).
	// P3: horizontal grid size (ignored).
	if len(params) >= 2 && params[1] == 1 {
		p.transparent = true
	}

	p.parse(data)

	return p.toImage(), nil
}

// initDefaultPalette sets up the default VGA 16-color palette plus a
// grayscale ramp for the remaining indices.
func (p *sixelParser) initDefaultPalette() {
	vgaColors := []color.RGBA{
		{0, 0, 0, 255},
		{0, 0, 205, 255},
		{205, 0, 0, 255},
		{205, 0, 205, 255},
		{0, 205, 0, 255},
		{0, 205, 205, 255},
		{205, 205, 0, 255},
		{205, 205, 205, 255},
		{0, 0, 0, 255},
		{0, 0, 255, 255},
		{255, 0, 0, 255},
		{255, 0, 255, 255},
		{0, 255, 0, 255},
		{0, 255, 255, 255},
		{255, 255, 0, 255},
		{255, 255, 255, 255},
	}

	copy(p.palette[:], vgaColors)

	for i := 16; i < 256; i++ {
		gray := uint8((i - 16) * 255 / 239)
		p.palette[i] = color.RGBA{gray, gray, gray, 255}
	}
}

// parse processes the sixel byte stream: color selection/definition (#),
// repeat (!), carriage return ($), next band (-), raster attributes ("),
// and sixel data bytes (the 6-bit range 0x3F-0x7E).
func (p *sixelParser) parse(data []byte) {
	i := 0
	for i < len(data) {
		b := data[i]
		i++

		switch {
		case b == '$':
			p.x = 0

		case b == '-':
			p.x = 0
			p.y += 6

		case b == '!':
			count, newI := p.parseNumber(data, i)
			i = newI
			if i < len(data) {
				sixel := data[i]
				i++
				if sixel >= '?' && sixel <= '~' {
					p.drawSixel(sixel, int(count))
				}
			}

		case b == '#':
			colorNum, newI := p.parseNumber(data, i)
			i = newI

			if i < len(data) && data[i] == ';' {
				i++
				colorType, newI := p.parseNumber(data, i)
				i = newI

				if i < len(data) && data[i] == ';' {
					i++
					v1, newI := p.parseNumber(data, i)
					i = newI

					if i < len(data) && data[i] == ';' {
						i++
						v2, newI := p.parseNumber(data, i)
						i = newI

						if i < len(data) && data[i] == ';' {
							i++
							v3, newI := p.parseNumber(data, i)
							i = newI

							if colorNum >= 0 && colorNum < 256 {
								if colorType == 1 {
									p.palette[colorNum] = hlsToRGB(int(v1), int(v2), int(v3))
								} else {
									r := uint8(v1 * 255 / 100)
									g := uint8(v2 * 255 / 100)
									b := uint8(v3 * 255 / 100)
									p.palette[colorNum] = color.RGBA{r, g, b, 255}
								}
							}
						}
					}
				}
			}

			if colorNum >= 0 && colorNum < 256 {
				p.colorIndex = int(colorNum)
			}

		case b >= '?' && b <= '~':
			p.drawSixel(b, 1)

		case b == '"':
			for i < len(data) && data[i] != '$' && data[i] != '-' &&
				data[i] != '#' && data[i] != '!' &&
				!(data[i] >= '?' && data[i] <= '~') {
				i++
			}
		}
	}
}

// parseNumber parses a decimal number from data starting at index i.
func (p *sixelParser) parseNumber(data []byte, i int) (int64, int) {
	var n int64
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		n = n*10 + int64(data[i]-'0')
		i++
	}
	return n, i
}

// drawSixel draws a sixel character at the current position. A sixel
// represents 6 vertical pixels encoded in 6 bits (bit 0 = top row).
func (p *sixelParser) drawSixel(b byte, count int) {
	if count <= 0 {
		count = 1
	}

	bits := b - '?'
	c := p.palette[p.colorIndex]

	for r := 0; r < count; r++ {
		for bit := 0; bit < 6; bit++ {
			if bits&(1<<bit) != 0 {
				py := p.y + bit
				px := p.x

				if p.pixels[py] == nil {
					p.pixels[py] = make(map[int]color.RGBA)
				}
				p.pixels[py][px] = c

				if px > p.maxX {
					p.maxX = px
				}
				if py > p.maxY {
					p.maxY = py
				}
			}
		}
		p.x++
	}
}

// toImage composites the sparse pixel map onto a tightly packed RGBA
// buffer. Unreferenced pixels stay transparent (0,0,0,0) when the image
// requested transparent background (P2=1); otherwise they're filled with
// palette color 0 first. The sparse pixels are drawn with draw.Over so
// premultiplied alpha compositing matches what a real renderer would do
// with a partially-opaque palette entry.
func (p *sixelParser) toImage() *SixelImage {
	if len(p.pixels) == 0 {
		return &SixelImage{}
	}

	width := p.maxX + 1
	height := p.maxY + 1

	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	if !p.transparent {
		bg := p.palette[0]
		draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	src := image.NewRGBA(image.Rect(0, 0, width, height))
	for y, row := range p.pixels {
		for x, c := range row {
			if x >= 0 && x < width && y >= 0 && y < height {
				src.SetRGBA(x, y, c)
			}
		}
	}
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Over)

	return &SixelImage{
		Width:       uint32(width),
		Height:      uint32(height),
		Data:        dst.Pix,
		Transparent: p.transparent,
	}
}

// hlsToRGB converts a Sixel HLS triple to RGB. Sixel's color wheel is
// rotated relative to standard HLS: blue=0, red=120, green=240 degrees.
func hlsToRGB(h, l, s int) color.RGBA {
	if s == 0 {
		v := uint8(l * 255 / 100)
		return color.RGBA{v, v, v, 255}
	}

	hNorm := float64(h) / 360.0
	lNorm := float64(l) / 100.0
	sNorm := float64(s) / 100.0

	hNorm = hNorm + 2.0/3.0
	if hNorm >= 1.0 {
		hNorm -= 1.0
	}

	var q float64
	if lNorm < 0.5 {
		q = lNorm * (1 + sNorm)
	} else {
		q = lNorm + sNorm - lNorm*sNorm
	}
	pp := 2*lNorm - q

	r := hueToRGB(pp, q, hNorm+1.0/3.0)
	g := hueToRGB(pp, q, hNorm)
	b := hueToRGB(pp, q, hNorm-1.0/3.0)

	return color.RGBA{
		R: uint8(r * 255),
		G: uint8(g * 255),
		B: uint8(b * 255),
		A: 255,
	}
}

// hueToRGB is a helper for HLS to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
