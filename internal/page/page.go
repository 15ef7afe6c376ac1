// Package page lays out the portfolio pages as positioned elements. A Page
// is the Geometry and ObstacleEnumerator the growth controller reads, and it
// draws itself with ebiten.
package page

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/internal/content"
)

// ErrUnknownRoute is returned by Navigate for paths that have no page.
var ErrUnknownRoute = errors.New("page: unknown route")

// Routes served by the site.
const (
	RouteHome     = "/"
	RouteProjects = "/projects"
	RouteLab      = "/lab"
	RouteContact  = "/kontakt"
)

// Routes lists every route in navigation order.
var Routes = []string{RouteHome, RouteProjects, RouteLab, RouteContact}

var routeTitles = map[string]string{
	RouteHome:     "Start",
	RouteProjects: "Projekty",
	RouteLab:      "Lab",
	RouteContact:  "Kontakt",
}

// Layout metrics in pixels.
const (
	navHeight   = 56
	margin      = 32
	gap         = 28
	cardMinW    = 260
	cardH       = 200
	headingH    = 40
	charW       = 8.5
	smallCharW  = 7
	lineH       = 22
	buttonH     = 32
	badgeH      = 22
	contentTail = 48
)

// RouteTitle returns the navigation title of route.
func RouteTitle(route string) string { return routeTitles[route] }

// Action is what a click on an item does.
type Action uint8

const (
	ActionNone Action = iota
	ActionNavigate
	ActionDetails
	ActionClose
	ActionExternal
)

// Item is one positioned element.
type Item struct {
	El    *sprout.Element
	Rect  sprout.Rect // page coordinates, or viewport coordinates when Fixed
	Title string
	Body  []string

	Action Action
	Target string // route, record id or URL depending on Action

	// Fixed items stay put while the page scrolls.
	Fixed bool

	glow *highlight
}

// Trigger reports whether hovering the item starts a growth session.
func (it *Item) Trigger() bool {
	switch it.El.Kind {
	case sprout.KindCard, sprout.KindButton, sprout.KindLink:
		return true
	}
	return false
}

// Glow returns the hover highlight in [0, 1].
func (it *Item) Glow() float64 {
	if it.glow == nil {
		return 0
	}
	return it.glow.value
}

// Page is one laid-out route. It is not safe for concurrent use.
type Page struct {
	store *content.Store
	route string

	vw, vh float64
	scroll sprout.Vec2
	height float64

	items []*Item
	byEl  map[*sprout.Element]*Item
	byID  map[string]*Item

	dialog *Dialog
}

var (
	_ sprout.Geometry           = (*Page)(nil)
	_ sprout.ObstacleEnumerator = (*Page)(nil)
)

// New lays out the home route for a w x h viewport.
func New(store *content.Store, w, h float64) *Page {
	p := &Page{store: store, route: RouteHome, vw: w, vh: h}
	p.layout()
	return p
}

// Route returns the current route.
func (p *Page) Route() string { return p.route }

// Navigate switches to route, resetting scroll and closing any dialog.
func (p *Page) Navigate(route string) error {
	if _, ok := routeTitles[route]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoute, route)
	}
	p.route = route
	p.scroll = sprout.Vec2{}
	p.dialog = nil
	p.layout()
	return nil
}

// Resize lays the page out again for a new viewport size.
func (p *Page) Resize(w, h float64) {
	if w == p.vw && h == p.vh {
		return
	}
	p.vw, p.vh = w, h
	open := p.dialog
	p.layout()
	if open != nil {
		_ = p.openDialog(open.Kind, open.ID)
	}
	p.ScrollTo(p.scroll.Y)
}

// Size returns the viewport size.
func (p *Page) Size() (w, h float64) { return p.vw, p.vh }

// Height returns the full page height.
func (p *Page) Height() float64 { return p.height }

// ClientRect implements sprout.Geometry.
func (p *Page) ClientRect(e *sprout.Element) sprout.Rect {
	it, ok := p.byEl[e]
	if !ok {
		return sprout.Rect{}
	}
	if it.Fixed {
		return it.Rect
	}
	return it.Rect.Translate(sprout.Vec2{X: -p.scroll.X, Y: -p.scroll.Y})
}

// Scroll implements sprout.Geometry.
func (p *Page) Scroll() sprout.Vec2 { return p.scroll }

// ObstacleElements implements sprout.ObstacleEnumerator. Elements inside the
// open dialog are left out.
func (p *Page) ObstacleElements() []*sprout.Element {
	out := make([]*sprout.Element, 0, len(p.items))
	for _, it := range p.items {
		if p.dialog != nil && it.El.Within(p.dialog.Panel.El) {
			continue
		}
		out = append(out, it.El)
	}
	return out
}

// ScrollTo sets the vertical scroll, clamped to the page.
func (p *Page) ScrollTo(y float64) sprout.Vec2 {
	maxY := math.Max(0, p.height-p.vh)
	p.scroll.Y = math.Min(math.Max(y, 0), maxY)
	return p.scroll
}

// ScrollBy moves the vertical scroll by dy.
func (p *Page) ScrollBy(dy float64) sprout.Vec2 {
	return p.ScrollTo(p.scroll.Y + dy)
}

// Items returns every item in layout order.
func (p *Page) Items() []*Item { return p.items }

// Item returns the item for e, or nil.
func (p *Page) Item(e *sprout.Element) *Item { return p.byEl[e] }

// Element returns the element with id, or nil.
func (p *Page) Element(id string) *sprout.Element {
	if it, ok := p.byID[id]; ok {
		return it.El
	}
	return nil
}

// Title returns the display title of e.
func (p *Page) Title(e *sprout.Element) string {
	if it, ok := p.byEl[e]; ok {
		return it.Title
	}
	return ""
}

// Dialog returns the open dialog, or nil.
func (p *Page) Dialog() *Dialog { return p.dialog }

// HitTrigger returns the outermost trigger element under the viewport point.
// While a dialog is open only its own items can be hit.
func (p *Page) HitTrigger(x, y float64) *sprout.Element {
	if p.dialog != nil {
		for _, it := range p.dialog.Items {
			if it.Trigger() && it.Rect.Contains(x, y) {
				return it.El
			}
		}
		return nil
	}
	for _, it := range p.items {
		if it.El.Parent != nil || !it.Trigger() {
			continue
		}
		if p.ClientRect(it.El).Contains(x, y) {
			return it.El
		}
	}
	return nil
}

// Click performs the action of the innermost actionable item under the
// viewport point and returns it. External links are returned for the caller
// to open.
func (p *Page) Click(x, y float64) (Action, string) {
	var hit *Item
	candidates := p.items
	if p.dialog != nil {
		candidates = p.dialog.Items
	}
	for _, it := range candidates {
		if it.Action != ActionNone && p.ClientRect(it.El).Contains(x, y) {
			hit = it
		}
	}
	if hit == nil {
		if p.dialog != nil && !p.dialog.Panel.Rect.Contains(x, y) {
			p.CloseDialog()
			return ActionClose, ""
		}
		return ActionNone, ""
	}
	switch hit.Action {
	case ActionNavigate:
		_ = p.Navigate(hit.Target)
	case ActionDetails:
		kind, id, _ := strings.Cut(hit.Target, ":")
		if err := p.openDialog(kind, id); err != nil {
			return ActionNone, ""
		}
	case ActionClose:
		p.CloseDialog()
	}
	return hit.Action, hit.Target
}

// SetHover starts the hover highlight tween of e towards on or off.
func (p *Page) SetHover(e *sprout.Element, on bool) {
	if it, ok := p.byEl[e]; ok && it.El.Kind == sprout.KindCard {
		if it.glow == nil {
			it.glow = &highlight{}
		}
		it.glow.set(on)
	}
}

// Update advances hover highlights by dt seconds.
func (p *Page) Update(dt float32) {
	for _, it := range p.items {
		if it.glow != nil {
			it.glow.update(dt)
		}
	}
}

// --- layout ---

func (p *Page) reset() {
	p.items = p.items[:0]
	p.byEl = make(map[*sprout.Element]*Item)
	p.byID = make(map[string]*Item)
}

func (p *Page) add(id string, kind sprout.ElementKind, parent *Item, r sprout.Rect, title string) *Item {
	el := &sprout.Element{ID: id, Kind: kind}
	if parent != nil {
		el.Parent = parent.El
	}
	it := &Item{El: el, Rect: r, Title: title}
	el.UserData = it
	p.items = append(p.items, it)
	p.byEl[el] = it
	p.byID[id] = it
	return it
}

func (p *Page) layout() {
	glows := make(map[string]*highlight)
	for _, it := range p.items {
		if it.glow != nil {
			glows[it.El.ID] = it.glow
		}
	}
	p.reset()

	x := float64(margin)
	for _, r := range Routes {
		title := routeTitles[r]
		w := textWidth(title, charW) + 24
		id := "nav" + strings.ReplaceAll(r, "/", "-")
		if r == RouteHome {
			id = "nav-home"
		}
		link := p.add(id, sprout.KindLink, nil,
			sprout.Rect{X: x, Y: 12, Width: w, Height: navHeight - 24}, title)
		link.Action, link.Target = ActionNavigate, r
		x += w + 12
	}

	y := float64(navHeight + margin)
	switch p.route {
	case RouteHome:
		y = p.layoutHome(y)
	case RouteProjects:
		y = p.heading("heading-projects", "Projekty", y)
		y = p.projectCards(p.store.Projects, y)
	case RouteLab:
		y = p.heading("heading-lab", "Lab", y)
		y = p.labCards(y)
	case RouteContact:
		y = p.layoutContact(y)
	}
	p.height = math.Max(y+contentTail, p.vh)

	for _, it := range p.items {
		if g, ok := glows[it.El.ID]; ok {
			it.glow = g
		}
	}
}

func (p *Page) heading(id, title string, y float64) float64 {
	w := textWidth(title, charW*1.6) + 16
	p.add(id, sprout.KindHeading, nil, sprout.Rect{X: margin, Y: y, Width: w, Height: headingH}, title)
	return y + headingH + gap
}

func (p *Page) layoutHome(y float64) float64 {
	y = p.heading("heading-hello", "Cześć, tu portfolio", y)
	intro := "Buduję aplikacje webowe, narzędzia i eksperymenty z grafiką."
	x := float64(margin)
	for i, word := range strings.Fields(intro) {
		w := textWidth(word, charW)
		if x+w > p.vw-margin {
			x = margin
			y += lineH + 6
		}
		p.add(fmt.Sprintf("word-%d", i), sprout.KindWord, nil, sprout.Rect{X: x, Y: y, Width: w, Height: lineH}, word)
		x += w + charW
	}
	y += lineH + gap

	y = p.heading("heading-featured", "Wybrane projekty", y)
	featured := p.store.Projects
	if len(featured) > 2 {
		featured = featured[:2]
	}
	y = p.projectCards(featured, y)

	if len(p.store.CVs) > 0 {
		y = p.heading("heading-cv", "CV", y)
		x := float64(margin)
		for _, cv := range p.store.CVs {
			w := textWidth(cv.Description, charW) + 32
			b := p.add("cv-"+cv.ID, sprout.KindButton, nil, sprout.Rect{X: x, Y: y, Width: w, Height: buttonH}, cv.Description)
			b.Action, b.Target = ActionExternal, "/static/cv/"+cv.Filename
			x += w + gap
		}
		y += buttonH + gap
	}
	return y
}

func (p *Page) layoutContact(y float64) float64 {
	y = p.heading("heading-contact", "Kontakt", y)
	links := []struct{ id, title, url string }{
		{"email", "kontakt@example.com", "mailto:kontakt@example.com"},
		{"github", "GitHub", "https://github.com/"},
		{"linkedin", "LinkedIn", "https://www.linkedin.com/"},
	}
	for _, l := range links {
		w := textWidth(l.title, charW) + 24
		it := p.add("contact-"+l.id, sprout.KindLink, nil, sprout.Rect{X: margin, Y: y, Width: w, Height: buttonH}, l.title)
		it.Action, it.Target = ActionExternal, l.url
		y += buttonH + gap/2
	}
	return y + gap
}

// grid returns the column count and card width for the viewport.
func (p *Page) grid() (int, float64) {
	usable := p.vw - 2*margin
	cols := max(1, int((usable+gap)/(cardMinW+gap)))
	w := (usable - float64(cols-1)*gap) / float64(cols)
	return cols, math.Max(w, 1)
}

type cardSpec struct {
	id, title, desc, kind string
	badges                []string
}

func (p *Page) cards(specs []cardSpec, y float64) float64 {
	if len(specs) == 0 {
		return y
	}
	cols, w := p.grid()
	for i, s := range specs {
		col, row := i%cols, i/cols
		r := sprout.Rect{
			X:      margin + float64(col)*(w+gap),
			Y:      y + float64(row)*(cardH+gap),
			Width:  w,
			Height: cardH,
		}
		card := p.add("card-"+s.id, sprout.KindCard, nil, r, s.title)
		card.Body = wrap(s.desc, int((w-32)/smallCharW), 3)

		p.add("card-"+s.id+"-title", sprout.KindHeading, card,
			sprout.Rect{X: r.X + 16, Y: r.Y + 16, Width: math.Min(textWidth(s.title, charW*1.2), w-32), Height: 26}, s.title)

		bx := r.X + 16
		for j, b := range s.badges {
			bw := textWidth(b, smallCharW) + 16
			if bx+bw > r.Right()-16 {
				break
			}
			p.add(fmt.Sprintf("card-%s-badge-%d", s.id, j), sprout.KindBadge, card,
				sprout.Rect{X: bx, Y: r.Y + 52, Width: bw, Height: badgeH}, b)
			bx += bw + 8
		}

		btn := p.add("card-"+s.id+"-details", sprout.KindButton, card,
			sprout.Rect{X: r.X + 16, Y: r.Bottom() - 16 - buttonH, Width: 110, Height: buttonH}, "Szczegóły")
		btn.Action, btn.Target = ActionDetails, s.kind+":"+s.id
	}
	rows := (len(specs) + cols - 1) / cols
	return y + float64(rows)*(cardH+gap)
}

func (p *Page) projectCards(projects []content.Project, y float64) float64 {
	specs := make([]cardSpec, 0, len(projects))
	for _, pr := range projects {
		specs = append(specs, cardSpec{id: pr.ID, title: pr.Title, desc: pr.Description, kind: "project", badges: pr.Tags})
	}
	return p.cards(specs, y)
}

func (p *Page) labCards(y float64) float64 {
	specs := make([]cardSpec, 0, len(p.store.Labs))
	for _, l := range p.store.Labs {
		specs = append(specs, cardSpec{id: l.ID, title: l.Title, desc: l.Description, kind: "lab", badges: []string{l.Status}})
	}
	return p.cards(specs, y)
}

func textWidth(s string, perChar float64) float64 {
	return float64(len([]rune(s))) * perChar
}

// wrap splits s into at most maxLines lines of at most width runes.
func wrap(s string, width, maxLines int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	var cur strings.Builder
	for _, w := range strings.Fields(s) {
		if cur.Len() > 0 && len([]rune(cur.String()))+1+len([]rune(w)) > width {
			lines = append(lines, cur.String())
			cur.Reset()
			if len(lines) == maxLines {
				return lines
			}
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 && len(lines) < maxLines {
		lines = append(lines, cur.String())
	}
	return lines
}
