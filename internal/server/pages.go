package server

import (
	"html/template"
	"net/http"

	"github.com/phanxgames/sprout/internal/content"
	"github.com/phanxgames/sprout/internal/page"
)

type navLink struct {
	Href, Title string
	Active      bool
}

type pageData struct {
	Title    string
	Nav      []navLink
	Route    string
	Projects []content.Project
	Labs     []content.Lab
	CVs      []content.CV
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="pl">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<nav>{{range .Nav}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Title}}</a> {{end}}</nav>
<main>
<h1>{{.Title}}</h1>
{{if eq .Route "/kontakt"}}
<ul>
<li><a href="mailto:kontakt@example.com">kontakt@example.com</a></li>
<li><a href="https://github.com/">GitHub</a></li>
<li><a href="https://www.linkedin.com/">LinkedIn</a></li>
</ul>
{{end}}
{{range .Projects}}
<article class="card" id="card-{{.ID}}">
<h2>{{.Title}}</h2>
<p>{{range .Tags}}<span class="badge">{{.}}</span> {{end}}</p>
<p>{{.Description}}</p>
<a class="btn" href="/api/projects/{{.ID}}">Szczegóły</a>
</article>
{{end}}
{{range .Labs}}
<article class="card" id="card-{{.ID}}">
<h2>{{.Title}}</h2>
<p><span class="badge">{{.Status}}</span></p>
<p>{{.Description}}</p>
<a class="btn" href="/api/labs/{{.ID}}">Szczegóły</a>
</article>
{{end}}
{{if .CVs}}<h2>CV</h2>{{range .CVs}}<a class="btn" href="/static/cv/{{.Filename}}">{{.Description}}</a> {{end}}{{end}}
</main>
</body>
</html>
`))

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	route := r.URL.Path
	data := pageData{Title: page.RouteTitle(route), Route: route}
	for _, p := range page.Routes {
		data.Nav = append(data.Nav, navLink{Href: p, Title: page.RouteTitle(p), Active: p == route})
	}
	switch route {
	case page.RouteHome:
		data.Title = "Portfolio"
		data.Projects = s.store.Projects
		if len(data.Projects) > 2 {
			data.Projects = data.Projects[:2]
		}
		data.CVs = s.store.CVs
	case page.RouteProjects:
		data.Projects = s.store.Projects
	case page.RouteLab:
		data.Labs = s.store.Labs
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.log.Error("page render failed", "error", err, "route", route)
	}
}
