package main

import (
	"fmt"

	"github.com/joshuapare/x3fkit/pkg/x3f"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDirCmd())
}

func newDirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir <file>",
		Short: "List the section directory",
		Long: `The dir command lists every entry in the X3F section directory with its
type tag, payload offset and length, and the parsed classification.

Example:
  x3finfo dir SDIM0001.X3F
  x3finfo dir SDIM0001.X3F --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDir(args)
		},
	}
	return cmd
}

func runDir(args []string) error {
	path := args[0]

	r, err := x3f.Open(path, x3f.ParseOptions{})
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer r.Close()

	type entryInfo struct {
		Tag    string `json:"tag"`
		Offset uint32 `json:"offset"`
		Length uint32 `json:"length"`
		Kind   string `json:"kind"`
		Error  string `json:"error,omitempty"`
	}
	var entries []entryInfo

	it := r.Entries()
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		info := entryInfo{Tag: e.Tag(), Offset: e.Offset, Length: e.Length}
		v, err := r.Classify(e)
		if err != nil {
			// Scoped to this entry; keep listing the rest.
			info.Kind = "invalid"
			info.Error = err.Error()
		} else {
			info.Kind = v.Kind.String()
		}
		entries = append(entries, info)
	}
	iterErr := it.Err()

	if jsonOut {
		return printJSON(entries)
	}

	printInfo("\nDirectory (%d entries):\n", len(entries))
	for i, e := range entries {
		printInfo("  [%2d] %-4s  offset=%-10d length=%-10d %s", i, e.Tag, e.Offset, e.Length, e.Kind)
		if e.Error != "" {
			printInfo("  (%s)", e.Error)
		}
		printInfo("\n")
	}
	if iterErr != nil {
		printInfo("\nWarning: %v\n", iterErr)
	}

	return nil
}
