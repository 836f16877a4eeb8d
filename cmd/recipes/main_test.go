package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vango-dev/recipes/internal/config"
	"github.com/vango-dev/recipes/internal/edamam"
	"github.com/vango-dev/recipes/internal/errors"
	"github.com/vango-dev/recipes/pkg/recipes"
	"github.com/vango-dev/recipes/pkg/urlparam"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     string
		wantCode string
	}{
		{"empty", nil, "", ""},
		{"flags", []string{"--diet", "balanced", "--meal", "Dinner"}, "diet=balanced&mealType=Dinner", ""},
		{"repeatable", []string{"--health", "vegan", "--health", "peanut-free"}, "health=vegan&health=peanut-free", ""},
		{"range", []string{"--calories", "100-300"}, "calories=100-300", ""},
		{"random", []string{"--random"}, "random=true", ""},
		{"flag overrides query", []string{"--query", "?dishType=Soup&diet=low-fat", "--diet", "balanced"}, "diet=balanced&dishType=Soup", ""},
		{"bad range", []string{"--time", "abc"}, "", "E401"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"encode"}, tt.args...)...)
			if got := errors.CodeOf(err); got != tt.wantCode {
				t.Fatalf("error = %v, want code %q", err, tt.wantCode)
			}
			if err != nil {
				return
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != version {
		t.Errorf("got %q, want %q", got, version)
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	if _, err := execute(t, "init", dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != config.DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Server.Port, config.DefaultPort)
	}

	if _, err := execute(t, "init", dir); errors.CodeOf(err) != "E107" {
		t.Errorf("second init error = %v, want E107", err)
	}
	if _, err := execute(t, "init", "--force", dir); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	if err := os.WriteFile(path, []byte(`{"server":{"port":8081,"urlMode":"push"}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RECIPES_PORT", "")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Port != 8081 || cfg.Server.URLMode != "push" {
		t.Errorf("server = %+v", cfg.Server)
	}

	if _, err := loadConfig(filepath.Join(dir, "missing.json")); errors.CodeOf(err) != "E101" {
		t.Errorf("missing file error = %v, want E101", err)
	}
}

type fakePages struct {
	searched *recipes.Params
	nexts    []string
	pages    []*recipes.List
}

func (f *fakePages) SearchFetch(p *recipes.Params) edamam.Fetch {
	f.searched = p
	return func(context.Context) (*recipes.List, error) { return f.pages[0], nil }
}

func (f *fakePages) NextFetch(href string) edamam.Fetch {
	f.nexts = append(f.nexts, href)
	return func(context.Context) (*recipes.List, error) { return f.pages[len(f.nexts)], nil }
}

func page(from int, next string, labels ...string) *recipes.List {
	l := &recipes.List{From: from, To: from + len(labels) - 1, Count: 20, Hits: []recipes.Hit{}, Next: recipes.Link{Href: next}}
	for _, label := range labels {
		l.Hits = append(l.Hits, recipes.Hit{Recipe: recipes.RecipeRef{Label: label}})
	}
	return l
}

func runWith(t *testing.T, src pageSource, p *recipes.Params, pages int) string {
	t.Helper()
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	if err := runSearch(cmd, src, p, urlparam.ModeReplace, "http://localhost:3000/", pages); err != nil {
		t.Fatalf("runSearch: %v", err)
	}
	return out.String()
}

func TestRunSearch(t *testing.T) {
	src := &fakePages{pages: []*recipes.List{
		page(1, "https://api.example/next", "Soup", "Stew"),
		page(3, "", "Salad"),
	}}
	p := recipes.NewParams(recipes.CaloriesRange(100, 300))

	out := runWith(t, src, p, 3)

	if !src.searched.Equal(p) {
		t.Errorf("searched %v, want %v", src.searched, p)
	}
	if len(src.nexts) != 1 || src.nexts[0] != "https://api.example/next" {
		t.Errorf("nexts = %v", src.nexts)
	}
	for _, want := range []string{"1. Soup", "2. Stew", "3. Salad", "http://localhost:3000/recipes?calories=100-300"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunSearchWithoutFilters(t *testing.T) {
	src := &fakePages{pages: []*recipes.List{page(1, "https://api.example/next", "Soup")}}

	out := runWith(t, src, recipes.NewParams(), 1)

	if len(src.nexts) != 0 {
		t.Errorf("fetched next pages %v with --pages 1", src.nexts)
	}
	if !strings.Contains(out, "http://localhost:3000/recipes\n") {
		t.Errorf("output missing bare URL:\n%s", out)
	}
}
