package mask

import (
	"container/heap"
	"math"

	"github.com/ironsheep/reef-annotator-mcp/internal/geometry"
)

// DiskMarkers returns a row-major label image over box where the pixels within
// radius of seed i carry label i+1. Where disks overlap, the nearest seed wins.
func DiskMarkers(box Box, seeds []geometry.Point, radius int) []int {
	markers := make([]int, box.Width*box.Height)
	best := make([]float64, len(markers))
	for i := range best {
		best[i] = math.Inf(1)
	}
	r := float64(radius)
	for i, s := range seeds {
		c := s.Pixel()
		for y := max(c.Y-radius, box.Top); y <= min(c.Y+radius, box.Bottom()-1); y++ {
			for x := max(c.X-radius, box.Left); x <= min(c.X+radius, box.Right()-1); x++ {
				d := math.Hypot(float64(x-c.X), float64(y-c.Y))
				if d > r {
					continue
				}
				idx := (y-box.Top)*box.Width + (x - box.Left)
				if d < best[idx] {
					best[idx] = d
					markers[idx] = i + 1
				}
			}
		}
	}
	return markers
}

// Watershed floods the foreground of m from the labelled markers over the
// relief given by the negated distance transform, so basins grow from the
// thickest parts of the shape outward. Every foreground pixel reachable from a
// marker receives that marker's label; unreachable pixels stay 0. Markers on
// background pixels are ignored.
func Watershed(m *Mask, markers []int) []int {
	w, h := m.Box.Width, m.Box.Height
	dist := DistanceTransform(m)
	labels := make([]int, w*h)
	queued := make([]bool, w*h)
	pq := &floodQueue{}
	var age int

	for i, l := range markers {
		if l > 0 && m.Pix[i] {
			labels[i] = l
			queued[i] = true
			heap.Push(pq, floodItem{idx: i, priority: -dist[i], age: age})
			age++
		}
	}

	for pq.Len() > 0 {
		it := heap.Pop(pq).(floodItem)
		x, y := it.idx%w, it.idx/w
		for _, d := range offsets4 {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			ni := ny*w + nx
			if !m.Pix[ni] || queued[ni] {
				continue
			}
			queued[ni] = true
			labels[ni] = labels[it.idx]
			heap.Push(pq, floodItem{idx: ni, priority: -dist[ni], age: age})
			age++
		}
	}
	return labels
}

type floodItem struct {
	idx      int
	priority float64
	age      int
}

type floodQueue []floodItem

func (q floodQueue) Len() int { return len(q) }

func (q floodQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].age < q[j].age
}

func (q floodQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *floodQueue) Push(x any) { *q = append(*q, x.(floodItem)) }

func (q *floodQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
