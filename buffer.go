package retrolcd

import "image"

// floatImage is a linear-light RGB working buffer.
type floatImage struct {
	w, h int
	pix  []float64
}

func newFloatImage(w, h int) *floatImage {
	return &floatImage{w: w, h: h, pix: make([]float64, w*h*3)}
}

// linearize converts an sRGB image into a linear floatImage.
func linearize(src *image.NRGBA) *floatImage {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	m := newFloatImage(w, h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			m.pix[i] = linearTable[row[x*4]]
			m.pix[i+1] = linearTable[row[x*4+1]]
			m.pix[i+2] = linearTable[row[x*4+2]]
		}
	}
	return m
}

func (m *floatImage) at(x, y int) rgb {
	i := (y*m.w + x) * 3
	return rgb{m.pix[i], m.pix[i+1], m.pix[i+2]}
}

func (m *floatImage) set(x, y int, c rgb) {
	i := (y*m.w + x) * 3
	m.pix[i], m.pix[i+1], m.pix[i+2] = c.R, c.G, c.B
}

// clampedAt reads with coordinates clamped to the edges.
func (m *floatImage) clampedAt(x, y int) rgb {
	return m.at(clampInt(x, 0, m.w-1), clampInt(y, 0, m.h-1))
}

// zeroAt reads black outside the image.
func (m *floatImage) zeroAt(x, y int) rgb {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return rgb{}
	}
	return m.at(x, y)
}

// alphaImage is a single channel plane: lightness or coverage.
type alphaImage struct {
	w, h int
	pix  []float64
}

func newAlphaImage(w, h int) *alphaImage {
	return &alphaImage{w: w, h: h, pix: make([]float64, w*h)}
}

func (m *alphaImage) at(x, y int) float64 {
	return m.pix[y*m.w+x]
}

func (m *alphaImage) set(x, y int, v float64) {
	m.pix[y*m.w+x] = v
}

func (m *alphaImage) clampedAt(x, y int) float64 {
	return m.at(clampInt(x, 0, m.w-1), clampInt(y, 0, m.h-1))
}

func (m *alphaImage) zeroAt(x, y int) float64 {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return 0
	}
	return m.at(x, y)
}

// bilinearAt samples at a continuous pixel-centre coordinate, with zero
// outside the plane.
func (m *alphaImage) bilinearAt(fx, fy float64) float64 {
	fx -= 0.5
	fy -= 0.5
	x0, y0 := floorInt(fx), floorInt(fy)
	tx, ty := fx-float64(x0), fy-float64(y0)
	top := m.zeroAt(x0, y0)*(1-tx) + m.zeroAt(x0+1, y0)*tx
	bottom := m.zeroAt(x0, y0+1)*(1-tx) + m.zeroAt(x0+1, y0+1)*tx
	return top*(1-ty) + bottom*ty
}

func (m *alphaImage) clone() *alphaImage {
	c := newAlphaImage(m.w, m.h)
	copy(c.pix, m.pix)
	return c
}

// convolve applies a symmetric separable kernel given by its centre tap
// followed by one side. Pixels outside the plane count as zero.
func (m *alphaImage) convolve(kernel []float64) *alphaImage {
	r := len(kernel) - 1
	tmp := newAlphaImage(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			v := m.at(x, y) * kernel[0]
			for k := 1; k <= r; k++ {
				v += (m.zeroAt(x-k, y) + m.zeroAt(x+k, y)) * kernel[k]
			}
			tmp.set(x, y, v)
		}
	}

	out := newAlphaImage(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			v := tmp.at(x, y) * kernel[0]
			for k := 1; k <= r; k++ {
				v += (tmp.zeroAt(x, y-k) + tmp.zeroAt(x, y+k)) * kernel[k]
			}
			out.set(x, y, v)
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorInt(v float64) int {
	i := int(v)
	if float64(i) > v {
		i--
	}
	return i
}
