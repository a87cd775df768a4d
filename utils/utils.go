// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides helpers for generating Voronoi sites in the
// normalized grid square.

package utils

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
)

// SiteExtent bounds random sites so that they stay clear of the grid edge.
const SiteExtent = 0.49

// GenerateRandomPoints generates cnt random points in
// [-SiteExtent, SiteExtent] x [-SiteExtent, SiteExtent].
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	sites := make([]r2.Point, cnt)

	for i := range cnt {
		sites[i] = r2.Point{
			X: (random.Float64()*2 - 1) * SiteExtent,
			Y: (random.Float64()*2 - 1) * SiteExtent,
		}
	}

	return sites
}

type bucket struct{ x, y int64 }

// DedupePoints returns points with near duplicates removed, keeping the first
// occurrence. Two points are duplicates when both coordinates differ by less
// than eps.
func DedupePoints(points []r2.Point, eps float64) []r2.Point {
	buckets := make(map[bucket][]r2.Point, len(points))
	out := make([]r2.Point, 0, len(points))
	for _, p := range points {
		b := bucket{int64(math.Round(p.X / eps)), int64(math.Round(p.Y / eps))}
		if hasNear(buckets, b, p, eps) {
			continue
		}
		buckets[b] = append(buckets[b], p)
		out = append(out, p)
	}
	return out
}

// hasNear reports whether a kept point in the buckets around b lies within
// eps of p on both axes.
func hasNear(buckets map[bucket][]r2.Point, b bucket, p r2.Point, eps float64) bool {
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, q := range buckets[bucket{b.x + dx, b.y + dy}] {
				if math.Abs(p.X-q.X) < eps && math.Abs(p.Y-q.Y) < eps {
					return true
				}
			}
		}
	}
	return false
}
