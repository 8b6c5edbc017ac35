// Package handlers implements the per-line rewriting steps of a script
// transformation. The dispatcher composes handlers into a short chain for
// each line; a handler either emits output and stops the chain or hands
// (possibly rewritten) text to the next handler.
//
// All mutable per-file state lives in State and is reached through Context,
// so a RuleSet can be shared by any number of transformations.
package handlers
