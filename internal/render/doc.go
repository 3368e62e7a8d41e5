// Package render provides raster metrics and the terminal display
// backend.
//
// Metrics models the renderer the accessibility engine consults for
// row display heights: cell pixel dimensions scaled by font size and
// device pixel ratio, with change notifications when either moves.
//
// Backend draws a term.Screen viewport with tcell for the termreader
// binary.
package render
