// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

// Connector collects unordered segments and chains them into closed contours.
// Duplicate segments are ignored.
type Connector struct {
	segments []*Segment
	seen     map[SegmentKey]struct{}
}

// Add appends s unless a segment with the same key was already added.
func (c *Connector) Add(s *Segment) {
	if c.seen == nil {
		c.seen = make(map[SegmentKey]struct{})
	}
	k := s.Key()
	if _, ok := c.seen[k]; ok {
		return
	}
	c.seen[k] = struct{}{}
	c.segments = append(c.segments, s)
}

// AddAll adds every segment of segs.
func (c *Connector) AddAll(segs []*Segment) {
	for _, s := range segs {
		c.Add(s)
	}
}

// Len returns the number of distinct segments.
func (c *Connector) Len() int {
	return len(c.segments)
}

// Segments returns the distinct segments in insertion order.
func (c *Connector) Segments() []*Segment {
	return c.segments
}

// Contours walks the segments end to end and returns every closed ring.
// Open strips are dropped.
func (c *Connector) Contours() []Contour {
	n := len(c.segments)
	incident := make(map[PointKey][]int, n)
	for i, s := range c.segments {
		ka, kb := KeyOf(s.Start), KeyOf(s.End)
		incident[ka] = append(incident[ka], i)
		incident[kb] = append(incident[kb], i)
	}

	used := make([]bool, n)
	var contours []Contour
	for i, s := range c.segments {
		if used[i] {
			continue
		}
		used[i] = true
		start := KeyOf(s.Start)
		cur := KeyOf(s.End)
		pts := Contour{s.Start, s.End}
		for cur != start {
			next := -1
			for _, j := range incident[cur] {
				if !used[j] {
					next = j
					break
				}
			}
			if next < 0 {
				break
			}
			used[next] = true
			seg := c.segments[next]
			p := seg.Start
			if KeyOf(seg.Start) == cur {
				p = seg.End
			}
			cur = KeyOf(p)
			pts = append(pts, p)
		}
		if cur == start && len(pts) >= 4 {
			contours = append(contours, pts[:len(pts)-1])
		}
	}
	return contours
}

// Polygon returns the largest closed ring as the outer contour, with every
// other ring lying inside it as a hole. It returns nil when no ring closes.
func (c *Connector) Polygon() *Polygon {
	contours := c.Contours()
	if len(contours) == 0 {
		return nil
	}
	best := 0
	for i, ct := range contours {
		if ct.Area() > contours[best].Area() {
			best = i
		}
	}
	outer := contours[best]
	var holes []Contour
	for i, ct := range contours {
		if i == best {
			continue
		}
		if outer.Contains(ct.interiorProbe()) {
			holes = append(holes, ct)
		}
	}
	return NewPolygon(outer, holes...)
}

// interiorProbe returns a point near the first vertex of c, nudged toward
// the ring's vertex average, for inside tests against other rings.
func (c Contour) interiorProbe() Point {
	var sum Point
	for _, p := range c {
		sum = sum.Add(p)
	}
	avg := sum.Mul(1 / float64(len(c)))
	return c[0].Add(avg.Sub(c[0]).Mul(1e-3))
}
