// Package debugsvg dumps an island's outline, skeleton, and support
// points to an SVG diagram for test fixtures and manual inspection.
// Every Dump call takes an io.Writer and a fixed canvas size; nothing
// here keeps package-level state or numbers files itself — the caller
// picks the destination and the name.
package debugsvg
