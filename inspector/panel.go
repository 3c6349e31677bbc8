package inspector

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrUnknownBinding is returned for paths nothing is registered under.
	ErrUnknownBinding = errors.New("unknown binding")
	// ErrReadOnly is returned when setting a binding without a setter.
	ErrReadOnly = errors.New("binding is read-only")
	// ErrDuplicateBinding is returned when a path is registered twice.
	ErrDuplicateBinding = errors.New("duplicate binding")
)

// Binding is a named value exposed for inspection and editing.
type Binding interface {
	Get() string
	Set(value string) error
}

// Func adapts a getter and an optional setter to a Binding.
type Func struct {
	GetFn func() string
	SetFn func(string) error
}

// Get returns the current value.
func (f Func) Get() string {
	return f.GetFn()
}

// Set applies value, or returns ErrReadOnly when there is no setter.
func (f Func) Set(value string) error {
	if f.SetFn == nil {
		return ErrReadOnly
	}
	return f.SetFn(value)
}

// ReadOnly wraps a getter as a Binding.
func ReadOnly(get func() string) Binding {
	return Func{GetFn: get}
}

// Color is a hex color binding, e.g. "#8e7cc3".
type Color struct {
	c        colorful.Color
	onChange func(colorful.Color)
}

// NewColor parses the initial hex color. onChange, if not nil, runs after
// every successful Set.
func NewColor(hex string, onChange func(colorful.Color)) (*Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("parsing color %q: %w", hex, err)
	}
	return &Color{c: c, onChange: onChange}, nil
}

// Get returns the color as lowercase hex.
func (b *Color) Get() string {
	return b.c.Hex()
}

// Set parses a hex color. Invalid input leaves the color unchanged.
func (b *Color) Set(value string) error {
	c, err := colorful.Hex(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("parsing color %q: %w", value, err)
	}
	b.c = c
	if b.onChange != nil {
		b.onChange(c)
	}
	return nil
}

// Value returns the current color.
func (b *Color) Value() colorful.Color {
	return b.c
}

// Panel is a registry of bindings addressed by slash-separated paths. The
// path prefix up to the last slash is the binding's folder.
type Panel struct {
	bindings map[string]Binding
}

// NewPanel creates an empty panel.
func NewPanel() *Panel {
	return &Panel{bindings: make(map[string]Binding)}
}

// Add registers a binding under path.
func (p *Panel) Add(path string, b Binding) error {
	path = strings.Trim(path, "/")
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrUnknownBinding)
	}
	if _, ok := p.bindings[path]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBinding, path)
	}
	p.bindings[path] = b
	return nil
}

// AddComponent registers one read-only binding per inspectable field of the
// component returned by get, under folder. Field names become snake_case.
// get is called on every read so the bindings stay live.
func (p *Panel) AddComponent(folder string, get func() any) error {
	for _, f := range ExtractFields(get()) {
		name := f.Name
		path := strings.Trim(folder, "/") + "/" + snakeCase(name)
		err := p.Add(path, ReadOnly(func() string {
			for _, cur := range ExtractFields(get()) {
				if cur.Name == name {
					return cur.String()
				}
			}
			return ""
		}))
		if err != nil {
			return err
		}
	}
	return nil
}

// Get reads the binding at path.
func (p *Panel) Get(path string) (string, error) {
	b, ok := p.bindings[strings.Trim(path, "/")]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownBinding, path)
	}
	return b.Get(), nil
}

// Set writes the binding at path.
func (p *Panel) Set(path, value string) error {
	b, ok := p.bindings[strings.Trim(path, "/")]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBinding, path)
	}
	if err := b.Set(value); err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	return nil
}

// Paths returns every registered path in sorted order.
func (p *Panel) Paths() []string {
	paths := make([]string, 0, len(p.bindings))
	for path := range p.bindings {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Folder returns the sorted paths directly or indirectly under folder.
func (p *Panel) Folder(folder string) []string {
	prefix := strings.Trim(folder, "/") + "/"
	var out []string
	for _, path := range p.Paths() {
		if strings.HasPrefix(path, prefix) {
			out = append(out, path)
		}
	}
	return out
}

// Snapshot returns the current value of every binding.
func (p *Panel) Snapshot() map[string]string {
	out := make(map[string]string, len(p.bindings))
	for path, b := range p.bindings {
		out[path] = b.Get()
	}
	return out
}
