package handlers

import (
	"github.com/arthur-debert/pwtransformer/pkg/datamap"
	"github.com/arthur-debert/pwtransformer/pkg/rules"
)

// Source describes the file being transformed.
type Source struct {
	// Path is the input script path.
	Path string
	// Dir is the input root the script was discovered under.
	Dir string
	// DataSourcePath is written into the header where the data file is imported.
	DataSourcePath string
}

// State is the mutable state of one file's transformation. It must never be
// shared between files.
type State struct {
	Data       *datamap.Ordered
	Reverse    *datamap.Reverse
	DynamicIDs *datamap.DynamicIDs
	// Uploads counts file uploads rewritten so far; it numbers the path variables.
	Uploads int
}

// NewState returns empty per-file state.
func NewState() *State {
	return &State{
		Data:       datamap.NewOrdered(),
		Reverse:    datamap.NewReverse(),
		DynamicIDs: datamap.NewDynamicIDs(),
	}
}

// Context is what a handler sees while processing one line.
type Context struct {
	Rules  *rules.RuleSet
	Source Source
	State  *State

	// Script is the filtered input script and Index the current line in it.
	Script []string
	Index  int

	out []string
}

// NewContext prepares a context for transforming script.
func NewContext(rs *rules.RuleSet, src Source, state *State, script []string) *Context {
	return &Context{
		Rules:  rs,
		Source: src,
		State:  state,
		Script: script,
	}
}

// Emit appends lines to the output script.
func (c *Context) Emit(lines ...string) {
	c.out = append(c.out, lines...)
}

// Output returns the lines emitted so far.
func (c *Context) Output() []string {
	return c.out
}

// IsLast reports whether the current line is the final one.
func (c *Context) IsLast() bool {
	return c.Index == len(c.Script)-1
}

// NextLine returns the line after the current one.
func (c *Context) NextLine() (string, bool) {
	if c.Index+1 >= len(c.Script) {
		return "", false
	}
	return c.Script[c.Index+1], true
}
