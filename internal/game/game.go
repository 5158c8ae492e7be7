// Package game implements the demo loop: poll the platform, run one input
// frame, update the current state and draw its action indicators.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-input/internal/config"
	"github.com/Faultbox/midgard-input/internal/engine/renderer"
	"github.com/Faultbox/midgard-input/internal/engine/sdlinput"
	"github.com/Faultbox/midgard-input/internal/engine/window"
	"github.com/Faultbox/midgard-input/internal/game/controls"
	"github.com/Faultbox/midgard-input/internal/game/states"
	"github.com/Faultbox/midgard-input/internal/input"
	"github.com/Faultbox/midgard-input/internal/input/action"
	"github.com/Faultbox/midgard-input/internal/input/event"
	"github.com/Faultbox/midgard-input/internal/input/textinput"
	"github.com/Faultbox/midgard-input/internal/logger"
)

// windowPriority runs the window handler ahead of every input consumer.
const windowPriority = 1000

// Game is the main game instance.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer

	platform *sdlinput.Adapter
	input    *input.Context
	registry *action.Registry
	text     *textinput.Input
	states   *states.Manager

	windowHandler event.HandlerID
}

// New creates a new game instance.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	g := &Game{
		config: cfg,
	}

	// window also initialises SDL and the OpenGL context
	var err error
	g.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.platform = sdlinput.New()
	g.input = input.NewContext()
	g.windowHandler = g.input.Router().Register(windowPriority, g.handleWindow)

	g.registry = action.NewRegistry(cfg.Input.BindingsFile)
	set := controls.Register(g.registry)
	if err := g.registry.ReadConfig(""); err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}
	// write back defaults for actions the file did not mention yet
	if err := g.registry.SaveConfig(""); err != nil {
		logger.Warn("failed to save keybindings", zap.Error(err))
	}

	actions := input.NewActions(g.input, g.registry)
	actions.SetAnyGamepads(cfg.Input.MaxGamepads)

	g.text = textinput.New(g.input.Router(), cfg.Input.TextPriority, g.input, textinput.SystemClipboard())
	g.text.SetPlatform(g.platform)

	env := &states.Env{
		Actions:  actions,
		Text:     g.text,
		Controls: set,
		Quit:     func() { g.running = false },
	}
	g.states = states.NewManager()
	gameplay := states.NewGameplayState(env, g.states)
	gameplay.SetMenu(states.NewMenuState(env, g.states, gameplay))
	g.states.Change(gameplay)

	logger.Info("game initialized successfully")
	return g, nil
}

// handleWindow reacts to window events. It never consumes them.
func (g *Game) handleWindow(ev *event.Event) bool {
	switch ev.Kind {
	case event.KindQuit:
		g.running = false
	case event.KindWindowResize:
		g.renderer.Resize(ev.Width, ev.Height)
	}
	return false
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Input: drain the platform queue, then sample and route
		events := g.platform.Poll()
		g.input.BeginFrame(g.platform)
		g.input.DispatchAll(events)
		if !g.running {
			break
		}

		// 2. Update game state
		if err := g.states.Update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		g.render()

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")

	if g.text != nil {
		g.text.Stop()
		g.text.Close()
	}
	if g.input != nil {
		g.input.Router().Unregister(g.windowHandler)
		g.input.Close()
	}
	if g.platform != nil {
		g.platform.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) render() {
	g.renderer.Begin()

	cells := g.states.Indicators()
	out := make([]renderer.Indicator, len(cells))
	for i, c := range cells {
		out[i] = renderer.Indicator{Label: c.Label, Held: c.Held, Active: c.Active}
	}
	g.renderer.DrawIndicators(out)

	g.renderer.End()
}
