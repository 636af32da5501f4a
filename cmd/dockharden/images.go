package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/dockharden"
)

// Run executes the images command.
func (c *ImagesCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(deps.Stderr, "error: file not found: %s\n", c.Path)
			return dockharden.Errorf(dockharden.ENOTFOUND, "file not found: %s", c.Path)
		}
		return err
	}

	images := dockharden.ParseBaseImages(string(data))
	if len(images) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no FROM lines found in Dockerfile")
		return dockharden.Errorf(dockharden.ENOIMAGES, "no FROM lines found in %s", c.Path)
	}

	for _, image := range images {
		fmt.Fprintln(deps.Stdout, image)
		for _, u := range dockharden.DocURLs(deps.Globals.DocsURL, []string{image}) {
			fmt.Fprintf(deps.Stdout, "  %s\n", u)
		}
	}
	return nil
}
