package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewField(t *testing.T) {
	f := NewField(nil, "Pattern", "docs/*.html")

	require.NotNil(t, f)
	assert.NotNil(t, f.styles)
	assert.Equal(t, "Pattern", f.Label())
	assert.Equal(t, "", f.Value())
	assert.False(t, f.Focused())
	assert.Equal(t, 50, f.Width())
}

func TestField_Init(t *testing.T) {
	assert.NotNil(t, NewField(nil, "x", "").Init())
}

func TestField_FocusBlur(t *testing.T) {
	f := NewField(nil, "x", "")

	f.Focus()
	assert.True(t, f.Focused())

	f.Blur()
	assert.False(t, f.Focused())
}

func TestField_TypingUpdatesValue(t *testing.T) {
	f := NewField(nil, "x", "")
	f.Focus()

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a/*")})

	assert.Equal(t, "a/*", f.Value())
}

func TestField_SetValueAndReset(t *testing.T) {
	f := NewField(nil, "x", "")

	f.SetValue("docs/**")
	assert.Equal(t, "docs/**", f.Value())

	f.Reset()
	assert.Equal(t, "", f.Value())
}

func TestField_SetWidth(t *testing.T) {
	f := NewField(nil, "x", "")

	f.SetWidth(100)
	assert.Equal(t, 100, f.Width())
	assert.Equal(t, 84, f.textinput.Width)

	f.SetWidth(10)
	assert.Equal(t, 20, f.textinput.Width)
}

func TestField_View(t *testing.T) {
	f := NewField(nil, "Pattern", "")
	f.SetValue("a/*")

	view := f.View()
	assert.Contains(t, view, "Pattern")
	assert.Contains(t, view, "a/*")
}
