package content

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Renderer turns record markdown into styled terminal output.
type Renderer struct {
	r *glamour.TermRenderer
}

// NewRenderer creates a renderer using a glamour standard style ("dark",
// "light", "notty", ...) wrapped at width columns. A zero width disables
// wrapping.
func NewRenderer(style string, width int) (*Renderer, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}
	return &Renderer{r: r}, nil
}

// Render styles markdown.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.r.Render(markdown)
}
