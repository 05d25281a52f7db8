//go:build aux

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/datawire/vscinstall/pkg/cliutil"
)

// docCommand returns a hidden command that writes documentation for the whole command tree into
// a fresh OUT_DIRECTORY.
func docCommand(use, short string, gen func(root *cobra.Command, dir string) error) *cobra.Command {
	return &cobra.Command{
		Hidden: true,
		Use:    use + " OUT_DIRECTORY",
		Short:  short,
		Args:   cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.RemoveAll(dir); err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o777); err != nil {
				return err
			}
			root := cmd.Root()
			root.DisableAutoGenTag = true
			return gen(root, dir)
		},
	}
}

func init() {
	// completion
	argparser.CompletionOptions.DisableDefaultCmd = false
	preRun := argparser.PersistentPreRunE
	argparser.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if completionCmd, _, err := cmd.Root().Find([]string{"completion"}); err == nil {
			completionCmd.Hidden = true
		}
		return preRun(cmd, args)
	}

	argparser.AddCommand(
		docCommand("man", "Generate man pages", func(root *cobra.Command, dir string) error {
			return doc.GenManTree(root, &doc.GenManHeader{
				Source: "VSC",
				Manual: root.Name(),
			}, dir)
		}),
		docCommand("mddoc", "Generate markdown documentation", doc.GenMarkdownTree),
	)
}
