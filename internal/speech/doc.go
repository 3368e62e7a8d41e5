// Package speech rewrites announcement strings through user-supplied
// Lua dictionaries before they reach the screen reader. Dictionaries
// expand terse shell output ("fatal: not a git repository") into
// friendlier spoken phrases, or strip noise the user never wants read.
//
// Only whole-string announcements pass through a Dictionary. The
// character-by-character live output stream is never rewritten; doing
// so would break keystroke echo suppression.
package speech
