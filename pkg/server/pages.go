package server

import (
	"bytes"
	"embed"
	stderrors "errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/recipes/internal/edamam"
	"github.com/vango-dev/recipes/internal/errors"
	"github.com/vango-dev/recipes/pkg/recipes"
	"github.com/vango-dev/recipes/pkg/vocab"
)

//go:embed templates/*.html
var templateFS embed.FS

type pages struct {
	name string
	tmpl *template.Template
}

func newPages(name string) *pages {
	return &pages{
		name: name,
		tmpl: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

type pageData struct {
	Title   string
	Name    string
	Query   string
	Filters []filter
	Recipe  *edamam.Recipe
	Error   string
}

type filter struct {
	Key      string
	Label    string
	Multiple bool
	Options  []option
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

// choices builds the select options of one vocabulary filter, marking the
// values present in p.
func choices[T interface {
	~string
	Label() string
}](p *recipes.Params, key recipes.ParamKey, label string, multiple bool, values []T) filter {
	selected := map[string]bool{}
	if v, ok := p.Get(key); ok {
		for _, s := range v.Query() {
			selected[s] = true
		}
	}
	f := filter{Key: string(key), Label: label, Multiple: multiple}
	for _, v := range values {
		f.Options = append(f.Options, option{
			Value:    string(v),
			Label:    v.Label(),
			Selected: selected[string(v)],
		})
	}
	return f
}

func filters(p *recipes.Params) []filter {
	return []filter{
		choices(p, recipes.KeyMealType, "Meal", false, vocab.MealTypes()),
		choices(p, recipes.KeyDishType, "Dish", false, vocab.DishTypes()),
		choices(p, recipes.KeyCuisineType, "Cuisine", false, vocab.CuisineTypes()),
		choices(p, recipes.KeyDiet, "Diet", true, vocab.DietLabels()),
		choices(p, recipes.KeyHealth, "Health", true, vocab.HealthLabels()),
	}
}

func (pg *pages) render(w http.ResponseWriter, status int, name string, data pageData) {
	data.Name = pg.name
	if data.Title == "" {
		data.Title = pg.name
	}
	var buf bytes.Buffer
	if err := pg.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.pages.render(w, http.StatusOK, "home.html", pageData{
		Filters: filters(recipes.NewParams()),
	})
}

// handleSearch renders the search page. The query string is the search, so
// the page can be shared; the session runs it once the socket connects.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	p, err := recipes.DecodeQuery(r.URL.Query())
	data := pageData{Title: "Search"}
	status := http.StatusOK
	if err != nil {
		data.Error = err.Error()
		status = http.StatusBadRequest
		p = recipes.NewParams()
	}
	data.Query = p.Encode()
	data.Filters = filters(p)
	s.pages.render(w, status, "search.html", data)
}

func (s *Server) handleRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.searcher == nil {
		s.pages.render(w, http.StatusServiceUnavailable, "recipe.html", pageData{Error: ErrNoSearcher.Error()})
		return
	}

	recipe, err := s.searcher.Recipe(r.Context(), id)
	if err != nil {
		status := http.StatusBadGateway
		if errors.CodeOf(err) == "E204" {
			status = http.StatusNotFound
		}
		var re *errors.RecipesError
		msg := err.Error()
		if stderrors.As(err, &re) {
			msg = re.Message
		}
		s.logger.Warn("recipe page failed", "id", id, "error", err)
		s.pages.render(w, status, "recipe.html", pageData{Error: msg})
		return
	}
	s.pages.render(w, http.StatusOK, "recipe.html", pageData{
		Title:  recipe.Label,
		Recipe: recipe,
	})
}
