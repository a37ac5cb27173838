package annotator

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/seitarof/gen-meta/accessor"
	"github.com/seitarof/gen-meta/matcher"
	"github.com/seitarof/gen-meta/tag"
)

// ViewAttr is the tag attribute naming the view a tag applies to.
const ViewAttr = "View"

// HaveTag matches any value the default annotator can query, yielding its
// tags of kind.
func HaveTag(kind reflect.Type) matcher.Matcher[any, tag.Tag] {
	return defaultAnnotator.HaveTag(kind)
}

// HaveTag matches any value an can query, yielding its tags of kind. Values
// that can not be queried match nothing.
func (an *Annotator) HaveTag(kind reflect.Type) matcher.Matcher[any, tag.Tag] {
	return func(v any) iter.Seq[tag.Tag] {
		q, err := an.Of(v)
		if err != nil {
			an.log.Debug("no query", zap.Any("value", v), zap.Error(err))
			return empty[tag.Tag]
		}
		return q.TagsOf(kind)
	}
}

// ExtendsValue matches tag.Extends tags listing base among their bases.
func ExtendsValue(base reflect.Type) matcher.Matcher[tag.Tag, tag.Tag] {
	return matcher.The(func(t tag.Tag) bool {
		e, ok := t.(tag.Extends)
		return ok && slices.Contains(e.Value(), base)
	})
}

// InDefaultOrInView accepts tags without a View attribute and tags whose
// view is view or the default view.
func InDefaultOrInView(view string) matcher.Func[any] {
	return defaultAnnotator.inView(view, true)
}

// OnlyInView accepts tags whose view is exactly view.
func OnlyInView(view string) matcher.Func[any] {
	return defaultAnnotator.inView(view, false)
}

// InDefaultOrInView is the package level InDefaultOrInView bound to an.
func (an *Annotator) InDefaultOrInView(view string) matcher.Func[any] {
	return an.inView(view, true)
}

// OnlyInView is the package level OnlyInView bound to an.
func (an *Annotator) OnlyInView(view string) matcher.Func[any] {
	return an.inView(view, false)
}

func (an *Annotator) inView(view string, orDefault bool) matcher.Func[any] {
	return func(v any) bool {
		actual, found, err := an.attr(v, ViewAttr)
		if err != nil {
			an.log.Debug("view not readable", zap.Any("value", v), zap.Error(err))
			return false
		}
		if !found {
			return orDefault
		}
		s := fmt.Sprint(actual)
		return s == view || orDefault && strings.EqualFold(s, tag.DefaultView)
	}
}

// attr reads the attribute called name of v. found is false when v has no
// such attribute.
func (an *Annotator) attr(v any, name string) (value any, found bool, err error) {
	q, err := an.Of(v)
	if err != nil {
		return nil, false, err
	}
	a, err := q.Accessor(name)
	if errors.Is(err, accessor.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	value, err = a.Get(v)
	return value, err == nil, err
}

// TagForView returns the single tag of kind on v that applies in view: a
// tag without a View attribute, or one in view or in the default view. More
// than one candidate is an error. No candidate is an error only when
// required is set.
func TagForView(v any, kind reflect.Type, view string, required bool) (tag.Tag, error) {
	return defaultAnnotator.TagForView(v, kind, view, required)
}

// TagForView is the package level TagForView bound to an.
func (an *Annotator) TagForView(v any, kind reflect.Type, view string, required bool) (tag.Tag, error) {
	q, err := an.Of(v)
	if err != nil {
		return nil, err
	}
	var found []tag.Tag
	for t := range matcher.Filter(q.TagsOf(kind), tagPredicate(an.InDefaultOrInView(view))) {
		found = append(found, t)
	}
	switch len(found) {
	case 0:
		if required {
			return nil, fmt.Errorf("%s for view %q on %s: %w", kind, view, q, accessor.ErrNotFound)
		}
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%d %s tags for view %q on %s: %w", len(found), kind, view, q, accessor.ErrAmbiguous)
	}
}

type tagPredicate matcher.Func[any]

func (p tagPredicate) Matches(t tag.Tag) bool { return p(t) }

// IntValue returns a function reading the integer attribute name of a tag.
// A missing or non integer attribute reads as zero.
func IntValue(name string) func(t tag.Tag) int {
	return defaultAnnotator.IntValue(name)
}

// IntValue is the package level IntValue bound to an.
func (an *Annotator) IntValue(name string) func(t tag.Tag) int {
	return func(t tag.Tag) int {
		v, found, err := an.attr(t, name)
		if err != nil || !found {
			return 0
		}
		rv := reflect.ValueOf(v)
		switch {
		case rv.CanInt():
			return int(rv.Int())
		case rv.CanUint():
			return int(rv.Uint())
		}
		return 0
	}
}

// ComparableValue returns a function reading the attribute name of a tag as
// a T. A missing attribute is an error.
func ComparableValue[T cmp.Ordered](name string) func(t tag.Tag) (T, error) {
	return func(t tag.Tag) (T, error) {
		var zero T
		q, err := defaultAnnotator.Of(t)
		if err != nil {
			return zero, err
		}
		a, err := q.Accessor(name)
		if err != nil {
			return zero, err
		}
		return accessor.GetAs(a, t, zero)
	}
}

// CompareByInt orders tags by their integer attribute name.
func CompareByInt(name string) func(a, b tag.Tag) int {
	value := IntValue(name)
	return func(a, b tag.Tag) int {
		return cmp.Compare(value(a), value(b))
	}
}
