// Package protocol implements the NZXT Smart Device lighting command grammar.
//
// A lighting directive (mode, per-LED colors, animation speed, step index) is
// encoded into the fixed pair of 65 byte interrupt transfers the device
// firmware expects.  Encoding is pure and deterministic, all I/O lives in the
// gonzxt and device packages.
//
// The byte layout was captured from the real firmware and must not be
// changed; an incorrect layout produces silently wrong device behavior
// rather than an error.
package protocol
