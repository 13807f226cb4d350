// Package partition splits a voronoi.Graph into thin, middle, and thick
// IslandParts using a hysteresis width band, then resolves every middle
// part and every too-short part so only thin and thick parts remain.
package partition
