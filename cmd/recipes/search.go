package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/recipes/internal/edamam"
	"github.com/vango-dev/recipes/pkg/recipes"
	"github.com/vango-dev/recipes/pkg/urlparam"
)

func searchCmd() *cobra.Command {
	var (
		flags      paramFlags
		configPath string
		pages      int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search recipes from the terminal",
		Long: `Search recipes with the same state container the web UI uses and print
the hits along with the URL the search would have in the browser.

Examples:
  recipes search --meal Dinner --diet balanced
  recipes search --calories 100-300 --pages 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.RequireCredentials(); err != nil {
				return err
			}
			p, err := flags.params(cmd)
			if err != nil {
				return err
			}

			client := edamam.FromConfig(cfg, edamam.WithLogger(slog.Default()))
			return runSearch(cmd, client, p, urlparam.ParseMode(cfg.Server.URLMode), cfg.URL(), pages)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to recipes.json")
	cmd.Flags().IntVar(&pages, "pages", 1, "Number of result pages to fetch")

	return cmd
}

// pageSource is the part of the Edamam client search needs.
type pageSource interface {
	SearchFetch(p *recipes.Params) edamam.Fetch
	NextFetch(href string) edamam.Fetch
}

func runSearch(cmd *cobra.Command, src pageSource, p *recipes.Params, mode urlparam.URLMode, base string, pages int) error {
	out := cmd.OutOrStdout()

	addr := &urlparam.Recorder{}
	c := recipes.New(
		recipes.WithNavigator(addr, mode),
		recipes.WithLogger(slog.Default()),
	)
	defer c.Dispose()
	d := c.Dispatch()

	d.Params.Update(p)

	ctx := cmd.Context()
	if err := edamam.Load(ctx, nil, d, src.SearchFetch(c.State().Params)); err != nil {
		return err
	}
	printPage(cmd, c.State().List)

	for i := 1; i < pages; i++ {
		next := c.State().List.Next.Href
		if next == "" {
			break
		}
		if err := edamam.Load(ctx, nil, d, src.NextFetch(next)); err != nil {
			return err
		}
		printPage(cmd, c.State().List)
	}

	patch, ok := addr.Last()
	if !ok {
		warn(out, "No filters set; the search URL is the bare page")
	}
	success(out, "%s", patch.URL(strings.TrimRight(base, "/")+"/recipes"))
	return nil
}

func printPage(cmd *cobra.Command, l *recipes.List) {
	out := cmd.OutOrStdout()
	if len(l.Hits) == 0 {
		info(out, "No recipes found")
		return
	}
	for i, h := range l.Hits {
		fmt.Fprintf(out, "%4d. %s\n", l.From+i, h.Recipe.Label)
		if h.Self.Href != "" {
			info(out, "    %s", h.Self.Href)
		}
	}
	info(out, "%d-%d of %d", l.From, l.To, l.Count)
}
