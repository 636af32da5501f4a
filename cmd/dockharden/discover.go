package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/dockharden"
	"github.com/fwojciec/dockharden/crawl"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	seed := c.URL
	if seed == "" {
		seed = strings.TrimRight(deps.Globals.DocsURL, "/") + dockharden.DefaultPathPrefix
	}

	var extra []string
	if c.Sitemap != "" {
		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap)
		if err != nil {
			// The crawl can still proceed from the seed alone.
			deps.Logger.Warn("sitemap unavailable", "url", c.Sitemap, "err", err)
		}
		extra = urls
	}

	crawler := &crawl.Crawler{
		Fetcher:  deps.Fetcher,
		Links:    deps.Links,
		MaxPages: c.MaxPages,
		Logger:   deps.Logger,
	}

	var progress crawl.ProgressFunc
	if c.Progress {
		progress = newProgressPrinter(deps.Stderr)
	}

	result, err := crawler.Crawl(deps.Ctx, seed, progress, extra...)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	for _, u := range result.DocURLs {
		fmt.Fprintln(deps.Stdout, u)
	}
	fmt.Fprintf(deps.Stderr, "Found %d documentation pages (%d visited, %d failed)\n",
		len(result.DocURLs), result.Visited, result.Failed)
	return nil
}
