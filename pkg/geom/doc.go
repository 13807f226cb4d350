// Package geom defines the fixed-point 2D primitives shared by every
// support-generation component: points, lines, polygons and
// polygons-with-holes, and axis-aligned bounding boxes. Coordinates are
// integer micrometers, scaled by 1e6. Nothing in this package depends on
// any other package in the module.
package geom
