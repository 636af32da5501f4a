package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/dockharden"
	"github.com/fwojciec/dockharden/rag"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	s := &Session{
		Asker:   deps.Asker,
		DocsURL: deps.Globals.DocsURL,
		Stdout:  deps.Stdout,
	}
	return s.Run(deps.Ctx, deps.Stdin)
}

// Session is the interactive conversion loop. Each line names a Dockerfile
// to convert; the documentation index is rebuilt for every conversion.
type Session struct {
	Asker   dockharden.Asker
	DocsURL string
	Stdout  io.Writer
}

// Run prints the banner and handles lines from in until the user exits or
// input ends. A cancelled ctx is only noticed between lines, since reading
// from in blocks.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(s.Stdout, "Chainguard Images Dockerfile Converter CLI")
	fmt.Fprintln(s.Stdout, "Type the path to a Dockerfile to convert, or 'exit' to quit.")
	fmt.Fprintln(s.Stdout)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.Stdout, "Enter Dockerfile path: ")
		if !scanner.Scan() {
			fmt.Fprintln(s.Stdout)
			return scanner.Err()
		}
		if s.Handle(ctx, scanner.Text()) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Handle processes one line of input and reports whether the session is done.
func (s *Session) Handle(ctx context.Context, line string) bool {
	path := strings.TrimSpace(line)
	switch strings.ToLower(path) {
	case "exit", "quit":
		fmt.Fprintln(s.Stdout, "Goodbye!")
		return true
	case "":
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		fmt.Fprintf(s.Stdout, "Error: File not found: %s\n\n", path)
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.printError(err)
		return false
	}
	dockerfile := string(data)
	if strings.TrimSpace(dockerfile) == "" {
		fmt.Fprintln(s.Stdout, "Error: Dockerfile is empty.")
		fmt.Fprintln(s.Stdout)
		return false
	}

	images := dockharden.ParseBaseImages(dockerfile)
	if len(images) == 0 {
		fmt.Fprintln(s.Stdout, "Error: No FROM lines found in Dockerfile.")
		fmt.Fprintln(s.Stdout)
		return false
	}
	fmt.Fprintf(s.Stdout, "Detected base images in Dockerfile: %s\n", strings.Join(images, ", "))

	urls := dockharden.DocURLs(s.DocsURL, images)
	fmt.Fprintln(s.Stdout, "Fetching documentation for:")
	for _, u := range urls {
		fmt.Fprintf(s.Stdout, "  %s\n", u)
	}

	if _, err := s.Asker.Load(ctx, urls); err != nil {
		s.printError(err)
		return false
	}

	fmt.Fprintln(s.Stdout, "\nConverting Dockerfile...")
	fmt.Fprintln(s.Stdout)
	answer, err := s.Asker.Ask(ctx, rag.ConversionRequest(s.DocsURL, dockerfile))
	if err != nil {
		s.printError(err)
		return false
	}

	fmt.Fprintln(s.Stdout, "--- Conversion Result ---")
	fmt.Fprintln(s.Stdout, strings.TrimSpace(answer))
	fmt.Fprintln(s.Stdout, "------------------------")
	fmt.Fprintln(s.Stdout)
	return false
}

func (s *Session) printError(err error) {
	fmt.Fprintf(s.Stdout, "Error: %s\n\n", errorText(err))
}

// errorText returns the message of an application error, or the full error
// text for anything else.
func errorText(err error) string {
	var e *dockharden.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
