package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stigoleg/noafk/internal/cli"
)

// This small tool generates shell completions and a man page from the
// command's own flag definitions.

func main() {
	root := cli.NewRootCommand(cli.Platform{})

	if err := writeCompletions(root); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := writeMan(root); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeCompletions(root *cobra.Command) error {
	base := filepath.Join("docs", "completions")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return err
	}

	name := root.Name()
	if err := root.GenBashCompletionFileV2(filepath.Join(base, name+".bash"), true); err != nil {
		return err
	}
	if err := root.GenZshCompletionFile(filepath.Join(base, "_"+name)); err != nil {
		return err
	}
	return root.GenFishCompletionFile(filepath.Join(base, name+".fish"), true)
}

func writeMan(root *cobra.Command) error {
	if err := os.MkdirAll("man", 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join("man", root.Name()+".1"), []byte(manPage(root)), 0o644)
}

func manPage(root *cobra.Command) string {
	name := root.Name()

	var b strings.Builder
	b.WriteString(".TH \"" + strings.ToUpper(name) + "\" \"1\" \"\" \"" + name + " " + root.Version + "\" \"User Commands\"\n")
	b.WriteString(".SH NAME\n" + name + " \\- " + root.Short + "\n")
	b.WriteString(".SH SYNOPSIS\n.B " + name + "\n[\\fIflags\\fR]\n")
	b.WriteString(".SH DESCRIPTION\n" + root.Long + "\n")

	b.WriteString(".SH OPTIONS\n")
	root.InitDefaultHelpFlag()
	root.InitDefaultVersionFlag()
	root.Flags().VisitAll(func(f *pflag.Flag) {
		names := "\\-\\-" + f.Name
		if f.Shorthand != "" {
			names = "\\-" + f.Shorthand + ", " + names
		}
		if f.Value.Type() != "bool" {
			names += " <" + f.Value.Type() + ">"
		}
		b.WriteString(".TP\n\\fB" + names + "\\fR\n" + escape(f.Usage) + "\n")
	})

	b.WriteString(".SH FILES\n")
	b.WriteString(".TP\n\\fBnoafk.yaml\\fR\nOptional configuration in the working directory (also .toml or .json).\n")
	b.WriteString(".TP\n\\fB.env\\fR\nOptional NOAFK_* overrides loaded before the environment.\n")

	b.WriteString(".SH EXAMPLES\n.nf\n" + escape(root.Example) + "\n.fi\n")
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "-", "\\-")
}
