package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/dockharden/cmd/dockharden"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"convert", "images", "discover"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	for _, arg := range []string{"--help", "-h", "help"} {
		t.Run(arg, func(t *testing.T) {
			t.Parallel()

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := main.NewMain().Run(context.Background(), []string{arg}, &bytes.Buffer{}, stdout, stderr)
			require.NoError(t, err)

			helpOutput := stdout.String()
			assert.Contains(t, helpOutput, "Usage:")
			assert.Contains(t, helpOutput, "Flags:")
			assert.Contains(t, helpOutput, "--docs-url")
		})
	}
}

func TestMain_Run_RejectsUnknownBackend(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), []string{"convert", "--backend", "openai"},
		&bytes.Buffer{}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
}
