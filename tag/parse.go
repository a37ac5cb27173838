package tag

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ParseFunc builds a tag from the value written after `name=` in a struct
// tag. value is empty for bare flags.
type ParseFunc func(value string) (Tag, error)

// Parsers maps tag names used in struct tags to their constructors.
type Parsers struct {
	mu    sync.RWMutex
	funcs map[string]ParseFunc
}

// NewParsers returns a registry holding the built-in tag names.
func NewParsers() *Parsers {
	p := &Parsers{funcs: map[string]ParseFunc{}}
	p.Register("position", parsePosition)
	p.Register("expand", parseExpand)
	return p
}

var defaultParsers = NewParsers()

// DefaultParsers returns the process-wide parser registry.
func DefaultParsers() *Parsers { return defaultParsers }

// RegisterParser registers fn under name in the default registry.
func RegisterParser(name string, fn ParseFunc) { defaultParsers.Register(name, fn) }

// Register adds or replaces the constructor for name.
func (p *Parsers) Register(name string, fn ParseFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.funcs[name] = fn
}

func (p *Parsers) lookup(name string) (ParseFunc, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	fn, ok := p.funcs[name]
	return fn, ok
}

// ParseStructTag reads the Key entry of st.
func (p *Parsers) ParseStructTag(st reflect.StructTag) ([]Tag, error) {
	raw, ok := st.Lookup(Key)
	if !ok {
		return nil, nil
	}
	return p.Parse(raw)
}

// Parse turns a tag string such as `position=3,expand` into tags, in
// declaration order. A name appearing more than once yields a single Repeated
// container at the place of its first occurrence.
func (p *Parsers) Parse(raw string) ([]Tag, error) {
	items, err := splitItems(raw)
	if err != nil {
		return nil, err
	}

	var out []Tag
	first := map[string]int{}
	for _, it := range items {
		fn, ok := p.lookup(it.name)
		if !ok {
			return nil, fmt.Errorf("unknown tag %q in %q", it.name, raw)
		}
		t, err := fn(it.value)
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", it.name, err)
		}

		idx, seen := first[it.name]
		if !seen {
			first[it.name] = len(out)
			out = append(out, t)
			continue
		}
		switch prev := out[idx].(type) {
		case Repeated:
			prev.Tags = append(prev.Tags, t)
			out[idx] = prev
		default:
			out[idx] = Repeated{Name: it.name, Tags: []Tag{prev, t}}
		}
	}
	return out, nil
}

type item struct {
	name  string
	value string
}

// splitItems splits on commas and spaces outside quotes, then separates
// name=value pairs from bare flags.
func splitItems(tag string) ([]item, error) {
	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false

	flush := func() {
		part := strings.TrimSpace(current.String())
		if part != "" {
			parts = append(parts, part)
		}
		current.Reset()
	}

	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(c)
		case c == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(c)
		case (c == ',' || c == ' ') && !inSingleQuote && !inDoubleQuote:
			flush()
		default:
			current.WriteByte(c)
		}
	}
	if inSingleQuote || inDoubleQuote {
		return nil, fmt.Errorf("invalid tag: unterminated quote in %q", tag)
	}
	flush()

	items := make([]item, 0, len(parts))
	for _, part := range parts {
		name, value, found := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid tag: empty name in %q", part)
		}
		if found {
			value = unquote(strings.TrimSpace(value))
		}
		items = append(items, item{name: name, value: value})
	}
	return items, nil
}

func unquote(value string) string {
	if len(value) >= 2 {
		if (value[0] == '\'' && value[len(value)-1] == '\'') || (value[0] == '"' && value[len(value)-1] == '"') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

func parsePosition(value string) (Tag, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("position must be an integer, got %q", value)
	}
	return Position(n), nil
}

func parseExpand(value string) (Tag, error) {
	if value != "" {
		return nil, fmt.Errorf("expand takes no value, got %q", value)
	}
	return Expand{}, nil
}
