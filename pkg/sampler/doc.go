// Package sampler places SupportIslandPoints inside one classified
// partition.Part: SampleThin walks a thin part's skeleton at uniform
// spacing, and SampleThick builds the thick part's offset field polygon
// and samples its border and interior.
package sampler
