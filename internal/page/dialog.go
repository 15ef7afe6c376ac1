package page

import (
	"fmt"
	"math"
	"strings"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/internal/content"
)

const (
	dialogMaxW    = 640
	dialogMaxH    = 480
	dialogInset   = 40
	dialogPadding = 24
)

// Dialog is the details overlay for one project or lab record. Its items are
// fixed to the viewport and never act as obstacles.
type Dialog struct {
	Kind  string // "project" or "lab"
	ID    string
	Panel *Item
	Items []*Item
	Lines []string
}

// OpenDetails opens the details dialog for a record. kind is "project" or
// "lab".
func (p *Page) OpenDetails(kind, id string) error {
	return p.openDialog(kind, id)
}

func (p *Page) openDialog(kind, id string) error {
	title, lines, err := p.detailLines(kind, id)
	if err != nil {
		return err
	}
	p.CloseDialog()

	w := math.Min(dialogMaxW, p.vw-2*dialogInset)
	h := math.Min(dialogMaxH, p.vh-2*dialogInset)
	r := sprout.Rect{X: (p.vw - w) / 2, Y: (p.vh - h) / 2, Width: math.Max(w, 1), Height: math.Max(h, 1)}

	d := &Dialog{Kind: kind, ID: id}
	d.Panel = p.add("dialog", sprout.KindPanel, nil, r, title)
	heading := p.add("dialog-title", sprout.KindHeading, d.Panel,
		sprout.Rect{X: r.X + dialogPadding, Y: r.Y + dialogPadding, Width: math.Min(textWidth(title, charW*1.4), r.Width-2*dialogPadding), Height: headingH}, title)
	closeBtn := p.add("dialog-close", sprout.KindButton, d.Panel,
		sprout.Rect{X: r.Right() - dialogPadding - 90, Y: r.Bottom() - dialogPadding - buttonH, Width: 90, Height: buttonH}, "Zamknij")
	closeBtn.Action = ActionClose

	width := int((r.Width - 2*dialogPadding) / smallCharW)
	maxLines := max(1, int((r.Height-3*dialogPadding-headingH-buttonH)/lineH))
	for _, l := range lines {
		d.Lines = append(d.Lines, wrap(l, width, maxLines)...)
	}
	if len(d.Lines) > maxLines {
		d.Lines = d.Lines[:maxLines]
	}

	d.Items = []*Item{d.Panel, heading, closeBtn}
	for _, it := range d.Items {
		it.Fixed = true
	}
	p.dialog = d
	return nil
}

// CloseDialog closes the open dialog, if any.
func (p *Page) CloseDialog() {
	if p.dialog == nil {
		return
	}
	keep := p.items[:0]
	for _, it := range p.items {
		if it.El.Within(p.dialog.Panel.El) {
			delete(p.byEl, it.El)
			delete(p.byID, it.El.ID)
			continue
		}
		keep = append(keep, it)
	}
	clear(p.items[len(keep):])
	p.items = keep
	p.dialog = nil
}

func (p *Page) detailLines(kind, id string) (string, []string, error) {
	var (
		title, desc string
		tech        []string
		lines       []string
	)
	switch kind {
	case "project":
		pr, err := p.store.Project(id)
		if err != nil {
			return "", nil, err
		}
		title, desc, tech = pr.Title, pr.Description, pr.Tech
		if pr.Details != nil {
			desc = pr.Details.FullDescription
			for _, f := range pr.Details.Features {
				lines = append(lines, "- "+f)
			}
		}
	case "lab":
		l, err := p.store.Lab(id)
		if err != nil {
			return "", nil, err
		}
		title, desc, tech = l.Title, l.Description, l.Tech
		lines = append(lines, "Status: "+l.Status)
		if l.Details != nil {
			desc = l.Details.FullDescription
			for _, f := range l.Details.Features {
				lines = append(lines, "- "+f)
			}
		}
	default:
		return "", nil, fmt.Errorf("%w: %s %q", content.ErrNotFound, kind, id)
	}
	out := append([]string{desc}, lines...)
	if len(tech) > 0 {
		out = append(out, "Tech: "+strings.Join(tech, ", "))
	}
	return title, out, nil
}
