// Package configstore owns the on-disk lifetime of configuration documents.
//
// A configuration document is an ordered mapping from parameter names to
// scalar or list values, persisted as an HCL file of top-level attributes.
// The package provides reading, atomic writing, partial update (merge) and
// "most recent config matching a suffix" lookup.
//
// Values cross the HCL boundary as cty values and are converted to a small
// native vocabulary: string, bool, float64 and []any. Numbers are always
// float64 so that a document read back from disk compares equal to the
// document that produced it.
package configstore
