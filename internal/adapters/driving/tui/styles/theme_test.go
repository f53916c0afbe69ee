package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Primary))
	assert.NotEmpty(t, string(theme.Secondary))
	assert.NotEmpty(t, string(theme.Foreground))
	assert.NotEmpty(t, string(theme.Muted))
	assert.NotEmpty(t, string(theme.Success))
	assert.NotEmpty(t, string(theme.Error))
	assert.NotEmpty(t, string(theme.Border))
	assert.NotEmpty(t, string(theme.Focus))
}

func TestDefaultTheme_VerdictColoursDistinct(t *testing.T) {
	theme := DefaultTheme()
	assert.NotEqual(t, theme.Success, theme.Error)
	assert.NotEqual(t, theme.Border, theme.Focus)
}

func TestNewStyles_NilTheme(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestNewStyles_CustomTheme(t *testing.T) {
	theme := &Theme{Primary: lipgloss.Color("#000000"), Success: lipgloss.Color("#00FF00")}
	s := NewStyles(theme)

	assert.Same(t, theme, s.Theme())
	assert.Equal(t, lipgloss.Color("#00FF00"), s.Matched.GetForeground())
}

func TestStyles_Render(t *testing.T) {
	s := DefaultStyles()
	assert.Contains(t, s.Matched.Render("match"), "match")
	assert.Contains(t, s.FocusedField.Render("x"), "x")
}
