package mask

import "math"

const edtInf = 1e20

// DistanceTransform returns, for every pixel of m (row-major over m.Box), the
// Euclidean distance to the nearest background pixel. Pixels outside the box
// count as background, so a foreground pixel on the border has distance 1.
func DistanceTransform(m *Mask) []float64 {
	w, h := m.Box.Width+2, m.Box.Height+2
	grid := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x > 0 && y > 0 && x < w-1 && y < h-1 && m.Pix[(y-1)*m.Box.Width+(x-1)] {
				grid[y*w+x] = edtInf
			}
		}
	}

	n := max(w, h)
	f := make([]float64, n)
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			f[y] = grid[y*w+x]
		}
		edt1D(f[:h], d[:h], v, z)
		for y := 0; y < h; y++ {
			grid[y*w+x] = d[y]
		}
	}
	for y := 0; y < h; y++ {
		copy(f[:w], grid[y*w:(y+1)*w])
		edt1D(f[:w], d[:w], v, z)
		copy(grid[y*w:(y+1)*w], d[:w])
	}

	out := make([]float64, m.Box.Width*m.Box.Height)
	for y := 0; y < m.Box.Height; y++ {
		for x := 0; x < m.Box.Width; x++ {
			out[y*m.Box.Width+x] = math.Sqrt(grid[(y+1)*w+(x+1)])
		}
	}
	return out
}

// edt1D is the Felzenszwalb-Huttenlocher lower envelope of parabolas over the
// sampled function f, writing squared distances into d.
func edt1D(f, d []float64, v []int, z []float64) {
	n := len(f)
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		s := ((f[q] + float64(q*q)) - (f[v[k]] + float64(v[k]*v[k]))) / float64(2*q-2*v[k])
		for s <= z[k] {
			k--
			s = ((f[q] + float64(q*q)) - (f[v[k]] + float64(v[k]*v[k]))) / float64(2*q-2*v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}
	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}
