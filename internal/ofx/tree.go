package ofx

// Element is a node in a parsed OFX document tree. Tag names are always
// uppercase. An element whose text is non-empty after trimming and which has
// no children is a leaf; anything else is an aggregate.
type Element struct {
	Tag      string
	Attr     map[string]string
	Text     string
	Children []*Element
}

// Child returns the first direct child with the given tag, or nil.
func (e *Element) Child(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// Find returns the first element with the given tag anywhere beneath e,
// depth-first, or nil. The receiver itself is never a match.
func (e *Element) Find(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

// Remove detaches the first direct child identical to child. Removing a node
// that is not a direct child is a no-op.
func (e *Element) Remove(child *Element) {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return
		}
	}
}
