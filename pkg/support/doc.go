// Package support holds the per-island sampling configuration and the
// tagged SupportIslandPoint variants, plus the two-point placement used
// for elongated islands. The orchestration that walks an island through
// simplify, the micro/small/elongated short-circuits and the general
// thin/thick/align pipeline lives in package sampler.
package support
