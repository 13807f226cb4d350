// Package layer implements layer-to-layer propagation: walking slices
// bottom to top, tracking which LayerSupportPoints already cover which
// region of the layer above via a per-part NearPoints spatial index,
// detecting newly emerging overhangs and peninsulas, and invoking island
// sampling as each needs it.
package layer
