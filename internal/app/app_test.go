package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/internal/content"
	"github.com/phanxgames/sprout/internal/page"
)

func newHeadless(t *testing.T, opts Options) *App {
	t.Helper()
	store, err := content.Load("../../content")
	require.NoError(t, err)
	cfg := sprout.DefaultConfig()
	cfg.Seed = 7
	opts.Headless = true
	a, err := New(cfg, store, opts)
	require.NoError(t, err)
	return a
}

func TestVariantAssignment(t *testing.T) {
	a := newHeadless(t, Options{})
	tests := []struct {
		id     string
		family sprout.Family
		name   string
	}{
		{"card-geocommunity", sprout.FamilySkyline, "skyline"},
		{"card-kwiatownik", sprout.FamilyOrganic, "organic"},
		{"nav-lab", sprout.FamilyCircuit, "circuit-menu"},
		{"cv-cv-pl", sprout.FamilyCircuit, "circuit"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			el := a.Element(tt.id)
			require.NotNil(t, el)
			v := a.VariantFor(el)
			require.NotNil(t, v)
			assert.Equal(t, tt.family, v.Family)
			assert.Equal(t, tt.name, v.Name)
		})
	}
}

func TestTriggerStartsAndStops(t *testing.T) {
	a := newHeadless(t, Options{})
	card := a.Element("card-kwiatownik")
	a.Trigger(sprout.TriggerEvent{Type: sprout.TriggerEnter, Element: card})
	require.Equal(t, 1, a.Controller().Active())
	require.NotNil(t, a.Controller().Tree(card))

	a.Trigger(sprout.TriggerEvent{Type: sprout.TriggerLeave, Element: card})
	assert.Equal(t, 0, a.Controller().Active())
	assert.Equal(t, 0, a.Controller().Occupancy().Len())
}

func TestClickClearsSessions(t *testing.T) {
	a := newHeadless(t, Options{})
	a.Trigger(sprout.TriggerEvent{Type: sprout.TriggerEnter, Element: a.Element("card-geocommunity")})
	require.Equal(t, 1, a.Controller().Active())

	r := a.Page().ClientRect(a.Element("nav-projects"))
	a.Click(r.X+1, r.Y+1)
	assert.Equal(t, page.RouteProjects, a.Page().Route())
	assert.Equal(t, 0, a.Controller().Active())
}

func TestResize(t *testing.T) {
	a := newHeadless(t, Options{})
	w, h := a.Layout(900, 600)
	assert.Equal(t, 900, w)
	assert.Equal(t, 600, h)
	sw, sh := a.Controller().Surface().Size()
	assert.Equal(t, 900, sw)
	assert.Equal(t, 600, sh)
	pw, ph := a.Page().Size()
	assert.Equal(t, 900.0, pw)
	assert.Equal(t, 600.0, ph)
}

func TestRunScript(t *testing.T) {
	runner, err := sprout.LoadScript([]byte(`{"steps": [
		{"action": "enter", "element": "card-kwiatownik"},
		{"action": "wait", "frames": 20},
		{"action": "snapshot", "label": "grown"},
		{"action": "leave", "element": "card-kwiatownik"},
		{"action": "snapshot", "label": "cleared"}
	]}`))
	require.NoError(t, err)
	dir := t.TempDir()
	a := newHeadless(t, Options{Script: runner, SnapshotDir: dir})

	frames, err := a.RunScript(100)
	require.NoError(t, err)
	assert.Greater(t, frames, 20)
	require.Len(t, a.Snapshots(), 2)
	for _, p := range a.Snapshots() {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	assert.Equal(t, 0, a.Controller().Active())
}

func TestRunScriptErrors(t *testing.T) {
	a := newHeadless(t, Options{})
	_, err := a.RunScript(10)
	require.ErrorIs(t, err, ErrNoScript)

	runner, err := sprout.LoadScript([]byte(`{"steps": [{"action": "snapshot", "label": "x"}]}`))
	require.NoError(t, err)
	a = newHeadless(t, Options{Script: runner})
	_, err = a.RunScript(10)
	assert.Error(t, err, "snapshot without a directory")
}

func TestComposite(t *testing.T) {
	a := newHeadless(t, Options{})
	img := a.Composite()
	assert.Equal(t, 1280, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
}
