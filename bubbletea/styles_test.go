package bubbletea_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/folio"
	bt "github.com/fwojciec/folio/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(folio.DefaultTheme())

	assert.Equal(t, lipgloss.Color("4"), styles.User.GetForeground())
	assert.True(t, styles.User.GetBold())
	assert.Equal(t, lipgloss.Color("8"), styles.Thinking.GetForeground())
	assert.True(t, styles.Thinking.GetFaint())
	assert.Equal(t, lipgloss.Color("6"), styles.Suggestion.GetForeground())
	assert.Equal(t, lipgloss.Color("1"), styles.Error.GetForeground())
	assert.Equal(t, lipgloss.Color("8"), styles.Muted.GetForeground())
	assert.Equal(t, lipgloss.Color("5"), styles.Accent.GetForeground())
	assert.True(t, styles.Accent.GetBold())
}

func TestNewStylesNegativeIndexYieldsNoColor(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(folio.Theme{User: -1})

	assert.Equal(t, lipgloss.NoColor{}, styles.User.GetForeground())
}
