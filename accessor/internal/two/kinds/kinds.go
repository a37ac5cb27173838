// Package kinds declares a tag kind whose qualified name clashes with a
// namesake package.
package kinds

type Label struct{}

func (Label) TagName() string { return "label" }
