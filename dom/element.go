// Package dom provides a minimal in-memory element tree with attribute, class and event support.
//
// It stands in for the browser document the coordinator is embedded in. Elements are not safe for
// concurrent use: every mutation and dispatch is expected to happen on the loop goroutine.
package dom

import (
	"sort"

	"github.com/samber/lo"
)

// EventClick is the event type dispatched when an element is clicked.
const EventClick = "click"

// Element is a node of the in-memory document tree.
type Element struct {
	tag       string
	attrs     map[string]string
	classes   map[string]struct{}
	children  []*Element
	parent    *Element
	listeners map[string][]*listener
}

// NewElement creates a detached element with the given tag name.
func NewElement(tag string) *Element {
	return &Element{
		tag:       tag,
		attrs:     make(map[string]string),
		classes:   make(map[string]struct{}),
		listeners: make(map[string][]*listener),
	}
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.tag
}

// SetAttribute assigns an attribute value, creating the attribute if needed.
func (e *Element) SetAttribute(name, value string) {
	e.attrs[name] = value
}

// RemoveAttribute deletes an attribute. Removing a missing attribute is a no-op.
func (e *Element) RemoveAttribute(name string) {
	delete(e.attrs, name)
}

// HasAttribute reports whether the attribute is present, regardless of its value.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// Attribute returns an attribute value and whether it was present.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// AddClass adds one or more classes.
func (e *Element) AddClass(names ...string) {
	for _, name := range names {
		e.classes[name] = struct{}{}
	}
}

// ToggleClass adds the class when on is true and removes it otherwise.
func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.classes[name] = struct{}{}
		return
	}
	delete(e.classes, name)
}

// HasClass reports whether the class is set.
func (e *Element) HasClass(name string) bool {
	_, ok := e.classes[name]
	return ok
}

// Classes returns the sorted class list.
func (e *Element) Classes() []string {
	names := lo.Keys(e.classes)
	sort.Strings(names)
	return names
}

// Parent returns the parent element or nil when detached.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// AppendChild attaches child as the last child of e, detaching it from any previous parent first.
func (e *Element) AppendChild(child *Element) {
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
}

// Remove detaches the element from its parent. Removing a detached element is a no-op.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	e.parent.children = lo.Without(e.parent.children, e)
	e.parent = nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Find returns the first descendant (depth-first) matching pred.
func (e *Element) Find(pred func(*Element) bool) (*Element, bool) {
	for _, child := range e.children {
		if pred(child) {
			return child, true
		}
		if found, ok := child.Find(pred); ok {
			return found, true
		}
	}
	return nil, false
}
