// Package template defines the engine contract used to turn a batch's
// docLinkTemplate into per-hook documentation links, together with the error
// types callers inspect when compilation or rendering fails. Concrete engines
// live in subpackages (see template/pongo).
package template
