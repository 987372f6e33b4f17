package humane

import "iter"

// Contexts returns the annotated errors in err's chain in breadth-first
// order. Aggregates contribute all of their children before any of them is
// expanded, so the top-level context of every branch comes before deeper
// ones. Each call walks the chain afresh; a nil err yields nothing.
func Contexts(err error) iter.Seq[ErrorContext] {
	return func(yield func(ErrorContext) bool) {
		if isNil(err) {
			return
		}
		queue := []error{err}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			if a, ok := Lookup(current); ok {
				if !yield(ErrorContext{Err: current, Annotation: a}) {
					return
				}
			}
			for _, child := range children(current) {
				if !isNil(child) {
					queue = append(queue, child)
				}
			}
		}
	}
}

// Collect materializes Contexts.
func Collect(err error) []ErrorContext {
	var out []ErrorContext
	for c := range Contexts(err) {
		out = append(out, c)
	}
	return out
}

// Suggestions returns every suggestion in err's chain in the order Contexts
// visits them, keeping the first occurrence of each.
func Suggestions(err error) []string {
	var d dedup
	for c := range Contexts(err) {
		d.add(c.Annotation.suggestions...)
	}
	return d.items
}

// children returns the direct causes of err: every child of an aggregate, or
// the single wrapped cause.
func children(err error) []error {
	switch unwrapped := err.(type) {
	case interface{ Unwrap() []error }:
		return unwrapped.Unwrap()
	case interface{ Errors() []error }:
		return unwrapped.Errors()
	case interface{ Unwrap() error }:
		if next := unwrapped.Unwrap(); next != nil {
			return []error{next}
		}
	}
	return nil
}

// primaryCause is the single link the renderer follows. An aggregate's
// primary cause is its first child.
func primaryCause(err error) error {
	if u, ok := err.(interface{ Unwrap() error }); ok {
		return u.Unwrap()
	}
	for _, child := range children(err) {
		if !isNil(child) {
			return child
		}
	}
	return nil
}

type dedup struct {
	seen  map[string]struct{}
	items []string
}

func (d *dedup) add(items ...string) {
	if d.seen == nil {
		d.seen = make(map[string]struct{})
	}
	for _, item := range items {
		if _, ok := d.seen[item]; ok {
			continue
		}
		d.seen[item] = struct{}{}
		d.items = append(d.items, item)
	}
}
