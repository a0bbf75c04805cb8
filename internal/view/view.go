// Package view renders the invitation and admin pages from embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/jekabolt/wedding-rsvp/internal/dto"
	"github.com/jekabolt/wedding-rsvp/internal/flow"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	layoutTemplate = "templates/layout.gohtml"

	pageIndex = "index.gohtml"
	pageAdmin = "admin.gohtml"
)

// Venue is one block of the event details section.
type Venue struct {
	Title   string `mapstructure:"title"`
	Date    string `mapstructure:"date"`
	Place   string `mapstructure:"place"`
	Address string `mapstructure:"address"`
}

// Site is the invitation content.
type Site struct {
	Title     string `mapstructure:"title"`
	Couple    string `mapstructure:"couple"`
	Date      string `mapstructure:"date"`
	Intro     string `mapstructure:"intro"`
	Ceremony  Venue  `mapstructure:"ceremony"`
	Reception Venue  `mapstructure:"reception"`
	RespondBy string `mapstructure:"respond_by"`
	HeroImage string `mapstructure:"hero_image"`
	Footer    string `mapstructure:"footer"`
}

type Renderer struct {
	site  Site
	pages map[string]*template.Template
}

type indexData struct {
	Site         Site
	State        flow.State
	GuestOptions []int
}

type adminData struct {
	Site    Site
	Summary *dto.RSVPsSummary
	Error   string
}

var funcs = template.FuncMap{
	"guestLabel": func(n int) string {
		if n == 1 {
			return "1 Guest"
		}
		return fmt.Sprintf("%d Guests", n)
	},
	"fmtTime": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("Jan 2, 2006, 03:04 PM")
	},
	"peopleHave": func(n int) string {
		if n == 1 {
			return "1 person has"
		}
		return fmt.Sprintf("%d people have", n)
	},
	"unix": func(t time.Time) int64 {
		return t.Unix()
	},
	"venues": func(s Site) []Venue {
		var vs []Venue
		for _, v := range []Venue{s.Ceremony, s.Reception} {
			if v.Title != "" {
				vs = append(vs, v)
			}
		}
		return vs
	},
}

func New(site Site) (*Renderer, error) {
	r := &Renderer{
		site:  site,
		pages: make(map[string]*template.Template),
	}
	if err := r.parseTemplates(); err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	return r, nil
}

func (r *Renderer) parseTemplates() error {
	dirEntries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("error reading template directory: %w", err)
	}
	for _, entry := range dirEntries {
		if entry.IsDir() || path.Join("templates", entry.Name()) == layoutTemplate {
			continue
		}
		tmpl, err := template.New(entry.Name()).Funcs(funcs).ParseFS(templatesFS, layoutTemplate, path.Join("templates", entry.Name()))
		if err != nil {
			return fmt.Errorf("error parsing template '%s': %w", entry.Name(), err)
		}
		r.pages[entry.Name()] = tmpl
	}
	return nil
}

func (r *Renderer) render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("template not found: %v", page)
	}
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("error executing template: %w", err)
	}
	return nil
}

// RenderIndex writes the invitation page with the RSVP section in state st.
func (r *Renderer) RenderIndex(w io.Writer, st flow.State) error {
	return r.render(w, pageIndex, indexData{
		Site:         r.site,
		State:        st,
		GuestOptions: flow.GuestOptions(),
	})
}

// RenderAdmin writes the admin listing. A non-empty errMsg replaces the tables.
func (r *Renderer) RenderAdmin(w io.Writer, summary *dto.RSVPsSummary, errMsg string) error {
	return r.render(w, pageAdmin, adminData{
		Site:    r.site,
		Summary: summary,
		Error:   errMsg,
	})
}

// Static serves the embedded stylesheet and images.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
