// Package pathsearch computes longest-path walks on a voronoi.Graph and
// derives positions along them — the "center of path" used by the
// small/elongated island fallbacks.
package pathsearch
