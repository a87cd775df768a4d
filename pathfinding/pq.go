// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package pathfinding

// nodeItem is an open-set entry. Entries go stale when a cheaper route to
// loc is found later; the search skips them on pop.
type nodeItem struct {
	loc int
	f   float64
	g   float64
}

// nodePQ implements heap.Interface ordered by f, ties by lower g first.
type nodePQ []nodeItem

func (pq nodePQ) Len() int { return len(pq) }
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].g > pq[j].g
}
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x any) {
	*pq = append(*pq, x.(nodeItem))
}
func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}
