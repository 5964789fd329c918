package Euler1D

import "sort"

// Snapshot is the full cell state at one recorded time
type Snapshot struct {
	Time            float64
	Rho, U, P, E, X []float64
}

// History records snapshots at the requested plot times. A snapshot is
// taken on the first step whose time reaches the next pending plot time.
type History struct {
	Times []float64
	Snaps []Snapshot
	next  int
	eps   float64
}

func newHistory(times []float64, eps float64) *History {
	h := &History{
		Times: append([]float64{}, times...),
		eps:   eps,
	}
	sort.Float64s(h.Times)
	return h
}

func (h *History) capture(c *Euler) {
	for h.next < len(h.Times) && c.Time >= h.Times[h.next]-h.eps {
		h.Snaps = append(h.Snaps, Snapshot{
			Time: c.Time,
			Rho:  append([]float64{}, c.Rho...),
			U:    append([]float64{}, c.U...),
			P:    append([]float64{}, c.P...),
			E:    append([]float64{}, c.E...),
			X:    append([]float64{}, c.X...),
		})
		h.next++
	}
}
