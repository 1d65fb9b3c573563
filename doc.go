// Package viewlines projects a mutable, versioned document of input lines
// onto the sequence of output lines a renderer draws.
//
// Two projections compose: soft wrapping splits an input line whose
// rendered width exceeds a configured column into several output rows with
// a hanging-indent prefix, and hiding removes caller-supplied input-line
// ranges from the output entirely.
//
// [Collection] is the central type. It consumes a [Model] (the document), a
// [wrap.Factory] (the per-line wrap decision), and publishes incremental
// [Event]s as the document mutates, while answering content, token, and
// position-translation queries over the output space in logarithmic time.
//
// Line and column numbers are 1-indexed at this package's boundary;
// internal offsets are 0-indexed.
package viewlines
