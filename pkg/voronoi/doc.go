// Package voronoi adapts an externally computed Voronoi diagram of an
// island's boundary segments into the module's own Graph: a
// labelled directed multigraph whose edges carry the min/max island
// thickness ("width") encountered along them.
//
// Constructing the diagram itself — the half-edge geometry, its cell
// adjacency, and inside/outside classification against the island — is an
// external collaborator's job, assumed to provide half-edge adjacency with
// a per-cell source-line index and inside/outside labelling. This package
// only consumes that output through the Diagram/DiagramEdge interface in
// build.go.
package voronoi
