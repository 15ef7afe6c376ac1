package page

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts holds the faces the page draws with.
type Fonts struct {
	Body    *text.GoTextFace
	Small   *text.GoTextFace
	Heading *text.GoTextFace
	Title   *text.GoTextFace
}

// LoadFonts parses the bundled Go fonts.
func LoadFonts() (*Fonts, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("page: parse regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("page: parse bold font: %w", err)
	}
	return &Fonts{
		Body:    &text.GoTextFace{Source: regular, Size: 15},
		Small:   &text.GoTextFace{Source: regular, Size: 12},
		Heading: &text.GoTextFace{Source: bold, Size: 26},
		Title:   &text.GoTextFace{Source: bold, Size: 18},
	}, nil
}

func lineHeight(f *text.GoTextFace) float64 {
	m := f.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}
