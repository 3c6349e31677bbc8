package game

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/waddle/inspector"
	"github.com/pthm-cable/waddle/viewpoint"
)

// Inspector binding paths.
const (
	BindingViewMode    = "engine/player/view/mode"
	BindingPlayerColor = "view/player/color"
	BindingCamera      = "view/camera/position"
	BindingTick        = "engine/tick"
)

// setupPanel registers the debug bindings. Writing the view mode goes
// through Controller.SetMode so strategy activation stays paired.
func (g *Game) setupPanel() error {
	g.panel = inspector.NewPanel()

	color, err := inspector.NewColor(g.cfg.Character.Color, func(c colorful.Color) {
		g.logger.Info("player color changed", "color", c.Hex())
	})
	if err != nil {
		return err
	}
	g.color = color

	bindings := []struct {
		path    string
		binding inspector.Binding
	}{
		{BindingViewMode, inspector.Func{
			GetFn: func() string { return g.viewpoint.Mode().String() },
			SetFn: func(v string) error {
				m, err := viewpoint.ParseMode(v)
				if err != nil {
					return err
				}
				return g.viewpoint.SetMode(m)
			},
		}},
		{BindingPlayerColor, color},
		{BindingCamera, inspector.ReadOnly(func() string {
			return inspector.FormatValue(g.viewpoint.Pose().Position, "%.2f")
		})},
		{BindingTick, inspector.ReadOnly(func() string { return strconv.Itoa(g.tick) })},
	}
	for _, b := range bindings {
		if err := g.panel.Add(b.path, b.binding); err != nil {
			return err
		}
	}

	components := []struct {
		folder string
		get    func() any
	}{
		{"player/position", func() any { return *g.posMap.Get(g.player) }},
		{"player/motion", func() any { return *g.motionMap.Get(g.player) }},
		{"player/waddle", func() any { return *g.waddleMap.Get(g.player) }},
	}
	for _, c := range components {
		if err := g.panel.AddComponent(c.folder, c.get); err != nil {
			return fmt.Errorf("registering %s: %w", c.folder, err)
		}
	}
	return nil
}

// PlayerColor returns the body color currently set on the panel.
func (g *Game) PlayerColor() colorful.Color {
	return g.color.Value()
}
