// Package align implements bounded Lloyd-style relaxation:
// repeatedly move every movable support point toward the centroid of its
// island-clipped Voronoi cell until the largest displacement in an
// iteration drops below a threshold or a fixed iteration budget runs out.
package align
