// Package attrs models the HTML attributes attached to a form control.
//
// Attributes come in two kinds: singles (`required`, `autofocus`) whose value
// is also their identity, and pairs (`class='input'`) identified by name. A
// Set stores at most one entry per identity. Inserting an attribute whose
// identity is already present either merges it (append mode, pair values are
// space-joined so several contributors can add to `class`) or overwrites it
// (replace mode). The mode only affects later inserts, which lets builders add
// baseline attributes first and switch to replace semantics for overrides.
package attrs
