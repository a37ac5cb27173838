package tag

import (
	"iter"
	"reflect"
)

var tagSliceType = reflect.TypeFor[[]Tag]()

// Unpack returns the tags held by t when t's kind is a container, that is a
// kind exposing a Value method returning []Tag. Any other tag is returned as
// the only element.
func Unpack(t Tag) []Tag {
	if contained, ok := contents(t); ok {
		return contained
	}
	return []Tag{t}
}

func contents(t Tag) (out []Tag, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()
	if t == nil {
		return nil, false
	}
	m := reflect.ValueOf(t).MethodByName("Value")
	if !m.IsValid() {
		return nil, false
	}
	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() != 1 || mt.Out(0) != tagSliceType {
		return nil, false
	}
	res := m.Call(nil)[0]
	if res.IsNil() {
		return nil, false
	}
	return res.Interface().([]Tag), true
}

// Normalize flattens every container in tags by one level, keeping order.
func Normalize(tags []Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, Unpack(t)...)
	}
	return out
}

// NormalizeSeq is the lazy form of Normalize.
func NormalizeSeq(tags iter.Seq[Tag]) iter.Seq[Tag] {
	return func(yield func(Tag) bool) {
		for t := range tags {
			for _, u := range Unpack(t) {
				if !yield(u) {
					return
				}
			}
		}
	}
}
