package inspector

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/waddle/components"
)

func TestParseTag(t *testing.T) {
	w, opts := ParseTag("label,fmt:%.3f")
	assert.Equal(t, WidgetLabel, w)
	assert.Equal(t, "%.3f", opts["fmt"])

	w, _ = ParseTag("skip")
	assert.Equal(t, WidgetSkip, w)

	w, opts = ParseTag("")
	assert.Equal(t, WidgetAuto, w)
	assert.Empty(t, opts)
}

func TestExtractFieldsHonorsTags(t *testing.T) {
	pos := components.Position{
		Current:  mgl64.Vec3{1, 2, 3},
		Previous: mgl64.Vec3{1, 2, 2},
		Delta:    mgl64.Vec3{0, 0, 1},
	}

	fields := ExtractFields(&pos)
	require.Len(t, fields, 2, "Previous is skipped")
	assert.Equal(t, "Current", fields[0].Name)
	assert.Equal(t, "(1.000, 2.000, 3.000)", fields[0].String())
	assert.Equal(t, "Delta", fields[1].Name)

	assert.Nil(t, ExtractFields(42))
}

func TestFieldStringAngleAndBool(t *testing.T) {
	fields := ExtractFields(components.Motion{Speed: 0.25, Heading: 3.141592653589793, Sliding: true})
	require.Len(t, fields, 3)
	assert.Equal(t, "0.2500", fields[0].String())
	assert.Equal(t, "180.0deg", fields[1].String())
	assert.Equal(t, WidgetBool, fields[2].Widget)
	assert.Equal(t, "true", fields[2].String())
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "foot_phase", snakeCase("FootPhase"))
	assert.Equal(t, "current", snakeCase("Current"))
	assert.Equal(t, "id", snakeCase("ID"))
}

func TestPanelGetSet(t *testing.T) {
	p := NewPanel()
	value := "a"
	require.NoError(t, p.Add("engine/thing", Func{
		GetFn: func() string { return value },
		SetFn: func(s string) error {
			if s == "" {
				return errors.New("empty")
			}
			value = s
			return nil
		},
	}))
	require.NoError(t, p.Add("engine/ro", ReadOnly(func() string { return "fixed" })))

	got, err := p.Get("/engine/thing")
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	require.NoError(t, p.Set("engine/thing", "b"))
	assert.Equal(t, "b", value)
	assert.Error(t, p.Set("engine/thing", ""))
	assert.Equal(t, "b", value)

	assert.ErrorIs(t, p.Set("engine/ro", "x"), ErrReadOnly)
	_, err = p.Get("engine/missing")
	assert.ErrorIs(t, err, ErrUnknownBinding)
	assert.ErrorIs(t, p.Set("engine/missing", "x"), ErrUnknownBinding)
	assert.ErrorIs(t, p.Add("engine/ro", ReadOnly(func() string { return "" })), ErrDuplicateBinding)

	assert.Equal(t, []string{"engine/ro", "engine/thing"}, p.Paths())
	assert.Equal(t, []string{"engine/ro", "engine/thing"}, p.Folder("engine"))
	assert.Empty(t, p.Folder("view"))
}

func TestAddComponentStaysLive(t *testing.T) {
	p := NewPanel()
	w := components.Waddle{Clock: 1.5}
	require.NoError(t, p.AddComponent("player/waddle", func() any { return w }))

	assert.Equal(t, []string{"player/waddle/body_tilt", "player/waddle/clock", "player/waddle/foot_phase"}, p.Paths())

	got, err := p.Get("player/waddle/clock")
	require.NoError(t, err)
	assert.Equal(t, "1.50", got)

	w.Clock = 2.25
	got, _ = p.Get("player/waddle/clock")
	assert.Equal(t, "2.25", got)
}

func TestColorBinding(t *testing.T) {
	var seen []colorful.Color
	c, err := NewColor("#8e7cc3", func(col colorful.Color) { seen = append(seen, col) })
	require.NoError(t, err)
	assert.Equal(t, "#8e7cc3", c.Get())

	require.NoError(t, c.Set("#FF0000"))
	assert.Equal(t, "#ff0000", c.Get())
	assert.Len(t, seen, 1)

	assert.Error(t, c.Set("not-a-color"))
	assert.Equal(t, "#ff0000", c.Get(), "invalid input leaves the color unchanged")
	assert.Len(t, seen, 1)

	_, err = NewColor("#zz", nil)
	assert.Error(t, err)
}
