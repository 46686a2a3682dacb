// Package loader orchestrates loading a Google Form: token acquisition, the
// Forms API fetch and normalization.
//
// A Loader distinguishes three outcomes (not loaded, load failed, loaded)
// plus an in-flight state. Normalization runs exactly once per successful
// fetch and never after a failed one. Overlapping loads are resolved by a
// generation counter: the most recently started load wins, and callers of
// earlier loads receive ErrSuperseded.
package loader
