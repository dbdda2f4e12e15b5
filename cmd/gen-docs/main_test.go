package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stigoleg/noafk/internal/cli"
)

func TestManPageListsFlags(t *testing.T) {
	page := manPage(cli.NewRootCommand(cli.Platform{}))

	assert.True(t, strings.HasPrefix(page, ".TH \"NOAFK\" \"1\""))
	for _, flag := range []string{"duration", "until", "config", "tui", "seed", "version", "help"} {
		assert.Contains(t, page, "\\-\\-"+flag)
	}
	assert.Contains(t, page, "\\-d, \\-\\-duration <string>")
	assert.Contains(t, page, ".SH EXAMPLES")
}
