package mask

import (
	"image"
	"sort"
)

// Connectivity selects the pixel neighbourhood used by region operations.
type Connectivity int

const (
	// Four connects pixels sharing an edge.
	Four Connectivity = 4
	// Eight also connects diagonal neighbours.
	Eight Connectivity = 8
)

var (
	offsets4 = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	offsets8 = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func (c Connectivity) offsets() [][2]int {
	if c == Eight {
		return offsets8
	}
	return offsets4
}

// Label assigns a positive label to every connected foreground region of m.
// The returned slice is row-major over m.Box with 0 for background; n is the
// number of regions. Labels follow the raster order of each region's first pixel.
func Label(m *Mask, conn Connectivity) (labels []int, n int) {
	w, h := m.Box.Width, m.Box.Height
	labels = make([]int, w*h)
	stack := make([]int, 0, 64)
	offs := conn.offsets()

	for start, v := range m.Pix {
		if !v || labels[start] != 0 {
			continue
		}
		n++
		labels[start] = n
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%w, i/w
			for _, d := range offs {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				ni := ny*w + nx
				if m.Pix[ni] && labels[ni] == 0 {
					labels[ni] = n
					stack = append(stack, ni)
				}
			}
		}
	}
	return labels, n
}

// FromLabels extracts the pixels carrying label as a tight mask. It returns nil
// when no pixel carries the label.
func FromLabels(labels []int, box Box, label int) *Mask {
	out := New(box)
	for i, l := range labels {
		out.Pix[i] = l == label
	}
	tight, ok := out.Tight()
	if !ok {
		return nil
	}
	return tight
}

// Components splits m into one tight mask per connected region, in label order.
func Components(m *Mask, conn Connectivity) []*Mask {
	labels, n := Label(m, conn)
	if n == 0 {
		return nil
	}
	return splitLabels(labels, m.Box, n)
}

// LargestComponent returns the connected region of m with the most pixels, or
// nil when m is empty. Ties keep the first region in raster order.
func LargestComponent(m *Mask, conn Connectivity) *Mask {
	comps := Components(m, conn)
	if len(comps) == 0 {
		return nil
	}
	best := comps[0]
	bestArea := best.Count()
	for _, c := range comps[1:] {
		if a := c.Count(); a > bestArea {
			best, bestArea = c, a
		}
	}
	return best
}

// ComponentsAbove returns the connected regions holding at least minArea pixels,
// largest first.
func ComponentsAbove(m *Mask, conn Connectivity, minArea int) []*Mask {
	comps := Components(m, conn)
	type sized struct {
		m    *Mask
		area int
	}
	kept := make([]sized, 0, len(comps))
	for _, c := range comps {
		if a := c.Count(); a >= minArea {
			kept = append(kept, sized{c, a})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].area > kept[j].area })
	out := make([]*Mask, len(kept))
	for i, k := range kept {
		out[i] = k.m
	}
	return out
}

func splitLabels(labels []int, box Box, n int) []*Mask {
	w := box.Width
	// Per-label extents first so each output is allocated at its tight size.
	type extent struct{ minX, minY, maxX, maxY int }
	ext := make([]extent, n+1)
	for l := 1; l <= n; l++ {
		ext[l] = extent{minX: w, minY: box.Height, maxX: -1, maxY: -1}
	}
	for i, l := range labels {
		if l == 0 {
			continue
		}
		x, y := i%w, i/w
		e := &ext[l]
		e.minX = min(e.minX, x)
		e.minY = min(e.minY, y)
		e.maxX = max(e.maxX, x)
		e.maxY = max(e.maxY, y)
	}
	out := make([]*Mask, 0, n)
	masks := make([]*Mask, n+1)
	for l := 1; l <= n; l++ {
		e := ext[l]
		if e.maxX < 0 {
			continue
		}
		masks[l] = New(Box{Top: box.Top + e.minY, Left: box.Left + e.minX, Width: e.maxX - e.minX + 1, Height: e.maxY - e.minY + 1})
		out = append(out, masks[l])
	}
	for i, l := range labels {
		if l == 0 {
			continue
		}
		masks[l].Set(box.Left+i%w, box.Top+i/w, true)
	}
	return out
}

// FillHoles sets every background pixel that is not 4-connected to the mask
// border. Foreground regions touching the border do not enclose anything.
func FillHoles(m *Mask) *Mask {
	w, h := m.Box.Width, m.Box.Height
	outside := make([]bool, w*h)
	stack := make([]int, 0, 2*(w+h))
	push := func(i int) {
		if !m.Pix[i] && !outside[i] {
			outside[i] = true
			stack = append(stack, i)
		}
	}
	for x := 0; x < w; x++ {
		push(x)
		push((h-1)*w + x)
	}
	for y := 0; y < h; y++ {
		push(y * w)
		push(y*w + w - 1)
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for _, d := range offsets4 {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			push(ny*w + nx)
		}
	}
	out := New(m.Box)
	for i := range out.Pix {
		out.Pix[i] = !outside[i]
	}
	return out
}

// Flood returns the region reachable from seed (global coordinates) through
// pixels of box for which accept returns true. The seed itself must be accepted;
// otherwise the result is empty.
func Flood(box Box, seed image.Point, conn Connectivity, accept func(x, y int) bool) *Mask {
	out := New(box)
	if !box.ContainsPixel(seed.X, seed.Y) || !accept(seed.X, seed.Y) {
		return out
	}
	offs := conn.offsets()
	stack := []image.Point{seed}
	out.Set(seed.X, seed.Y, true)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range offs {
			nx, ny := p.X+d[0], p.Y+d[1]
			if !box.ContainsPixel(nx, ny) || out.At(nx, ny) || !accept(nx, ny) {
				continue
			}
			out.Set(nx, ny, true)
			stack = append(stack, image.Point{X: nx, Y: ny})
		}
	}
	return out
}
