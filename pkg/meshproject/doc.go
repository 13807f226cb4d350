// Package meshproject is the boundary to the "final projection of the
// chosen 2D points onto the mesh surface" external collaborator: island
// sampling and layer propagation only ever produce 2D positions on a
// slice plane, and something outside this module has to drop each onto
// the actual solid. MoveOnMeshSurface gives that collaborator a concrete,
// sphere-traced implementation against a signed-distance-field solid.
package meshproject
