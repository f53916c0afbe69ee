package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sitemap/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sitemap/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sitemap/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sitemap/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sitemap/internal/core/domain"
)

// Mode selects what the tester evaluates.
type Mode int

const (
	// ModePattern tests one wildcard pattern against an input.
	ModePattern Mode = iota

	// ModeRoute routes a request through the active sitemap.
	ModeRoute
)

func (m Mode) String() string {
	if m == ModeRoute {
		return "route"
	}
	return "pattern"
}

// App is the pattern tester following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	status *status.Bar

	mode   Mode
	fields map[Mode][]*input.Field
	focus  int

	// Last evaluation.
	result domain.MatchResult
	route  *domain.RouteMatch
	err    error

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		status: status.NewBar(s, km),
		fields: map[Mode][]*input.Field{
			ModePattern: {
				input.NewField(s, "Pattern", "docs/**/*.html"),
				input.NewField(s, "Input", "docs/guide/index.html"),
			},
			ModeRoute: {
				input.NewField(s, "URI", "/docs/index.html"),
				input.NewField(s, "Host", "localhost"),
			},
		},
	}
	a.fields[ModePattern][0].Focus()
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("sitemap - pattern tester"),
		a.fields[a.mode][a.focus].Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(key, a.keymap.ToggleMode):
			a.setMode(1 - a.mode)
			return a, nil
		case keymap.Matches(key, a.keymap.NextField):
			return a, a.moveFocus(1)
		case keymap.Matches(key, a.keymap.PrevField):
			return a, a.moveFocus(-1)
		case keymap.Matches(key, a.keymap.Clear):
			a.fields[a.mode][a.focus].Reset()
			a.evaluate()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.fields[a.mode][a.focus], cmd = a.fields[a.mode][a.focus].Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		a.evaluate()
	}
	return a, cmd
}

func (a *App) setMode(m Mode) {
	a.fields[a.mode][a.focus].Blur()
	a.mode = m
	a.focus = 0
	a.fields[a.mode][a.focus].Focus()
	a.evaluate()
}

func (a *App) moveFocus(delta int) tea.Cmd {
	fields := a.fields[a.mode]
	fields[a.focus].Blur()
	a.focus = (a.focus + delta + len(fields)) % len(fields)
	return fields[a.focus].Focus()
}

// evaluate runs the current mode against the field values and updates the status bar.
func (a *App) evaluate() {
	a.result, a.route, a.err = domain.MatchResult{}, nil, nil
	a.status.Clear()
	fields := a.fields[a.mode]

	if a.mode == ModePattern {
		a.result = a.ports.Match.Match(fields[0].Value(), fields[1].Value())
		if a.result.Matched {
			a.status.SetState(status.StateMatched)
			a.status.SetCaptures(len(a.result.Captures) - 1)
		} else {
			a.status.SetState(status.StateNoMatch)
		}
		return
	}

	m, err := a.ports.Match.Route(a.ctx, domain.Request{URI: fields[0].Value(), Host: fields[1].Value()})
	switch {
	case errors.Is(err, domain.ErrNoRoute):
		a.status.SetState(status.StateNoMatch)
	case err != nil:
		a.err = err
		a.status.SetState(status.StateError)
		a.status.SetMessage(err.Error())
	default:
		a.route = m
		a.status.SetState(status.StateMatched)
		a.status.SetCaptures(len(m.Captures) - 1)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("sitemap " + a.mode.String() + " tester"))
	b.WriteString("\n\n")
	for _, f := range a.fields[a.mode] {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.renderResult())
	b.WriteString("\n")

	body := b.String()
	if a.height > 0 {
		body = lipgloss.NewStyle().Height(a.height - 1).Render(body)
	}
	return body + "\n" + a.status.View()
}

func (a *App) renderResult() string {
	var captures []string
	switch {
	case a.mode == ModePattern && a.result.Matched:
		captures = a.result.Captures
	case a.mode == ModeRoute && a.route != nil:
		r := a.route.Route
		line := fmt.Sprintf("%s %s %q -> %s", r.Action, r.MatcherOrDefault(), r.Pattern, a.route.Target)
		if r.Name != "" {
			line = r.Name + ": " + line
		}
		captures = a.route.Captures
		var b strings.Builder
		b.WriteString(a.styles.Normal.Render(line))
		b.WriteString("\n")
		b.WriteString(a.renderCaptures(captures))
		return b.String()
	default:
		return a.styles.Muted.Render("no captures")
	}
	return a.renderCaptures(captures)
}

func (a *App) renderCaptures(captures []string) string {
	lines := make([]string, len(captures))
	for i, c := range captures {
		lines[i] = a.styles.Muted.Render(fmt.Sprintf("{%d} ", i)) + a.styles.Capture.Render(c)
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.status.SetWidth(width)
	for _, fields := range a.fields {
		for _, f := range fields {
			f.SetWidth(width)
		}
	}
}

// Mode returns the current mode.
func (a *App) Mode() Mode {
	return a.mode
}

// Focus returns the index of the focused field.
func (a *App) Focus() int {
	return a.focus
}

// Result returns the last pattern match result.
func (a *App) Result() domain.MatchResult {
	return a.result
}

// RouteMatch returns the last route match, if any.
func (a *App) RouteMatch() *domain.RouteMatch {
	return a.route
}

// Err returns the last routing error.
func (a *App) Err() error {
	return a.err
}

// Run starts the TUI program and blocks until it exits.
func Run(ctx context.Context, ports *Ports) error {
	app, err := NewApp(ports)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app.WithContext(ctx), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
