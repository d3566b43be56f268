// Package types defines the shared vocabulary for parsing SIGMA X3F RAW
// container files: the error taxonomy, entry classification kinds, and parse
// options.
//
// Design goals:
//   - Zero-copy views that borrow from the caller's buffer; no hidden copies.
//   - Paranoid bounds checking; never panic on malformed input.
//   - Typed errors with stable categories (magic/version/truncated/bounds).
//
// This package has no dependencies beyond the standard library so the
// low-level decoders and the public facade can both import it without
// cycles.
package types
