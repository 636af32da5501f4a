package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/dockharden/crawl"
)

const progressURLWidth = 60

// shortenURL keeps the end of a URL, which names the image and section.
func shortenURL(url string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(url) <= width {
		return url
	}
	if width < 4 {
		return url[:width]
	}
	return "..." + url[len(url)-width+3:]
}

// newProgressPrinter returns a crawl.ProgressFunc that redraws a single
// status line on w.
func newProgressPrinter(w io.Writer) crawl.ProgressFunc {
	docs := 0
	return func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressVisiting:
			fmt.Fprintf(w, "\r\033[K[%d visited, %d queued, %d docs] %s", e.Visited, e.Pending, docs, shortenURL(e.URL, progressURLWidth))
		case crawl.ProgressDocument:
			docs++
		case crawl.ProgressFinished:
			fmt.Fprint(w, "\r\033[K")
		}
	}
}
