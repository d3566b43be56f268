package main

import (
	"fmt"

	"github.com/joshuapare/x3fkit/pkg/x3f"
	"github.com/spf13/cobra"
)

var propsName string

func init() {
	cmd := newPropsCmd()
	cmd.Flags().StringVar(&propsName, "name", "", "Show only properties with this name")
	rootCmd.AddCommand(cmd)
}

func newPropsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "props <file>",
		Short: "Dump the embedded camera properties",
		Long: `The props command decodes every property list in the file and prints the
name/value pairs in file order. Duplicate names are printed as written.

Example:
  x3finfo props SDIM0001.X3F
  x3finfo props SDIM0001.X3F --name CAMMODEL
  x3finfo props SDIM0001.X3F --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProps(args)
		},
	}
	return cmd
}

func runProps(args []string) error {
	path := args[0]

	r, err := x3f.Open(path, x3f.ParseOptions{})
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer r.Close()

	lists, err := r.PropertyLists()
	if err != nil {
		return fmt.Errorf("failed to read property lists: %w", err)
	}

	type propInfo struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	var props []propInfo

	for _, pl := range lists {
		it := pl.Pairs()
		for {
			p, ok := it.Next()
			if !ok {
				break
			}
			name, value, err := x3f.DecodeProperty(p)
			if err != nil {
				return fmt.Errorf("failed to decode property: %w", err)
			}
			if propsName != "" && name != propsName {
				continue
			}
			props = append(props, propInfo{Name: name, Value: value})
		}
		if err := it.Err(); err != nil {
			return fmt.Errorf("corrupt property list: %w", err)
		}
	}

	if jsonOut {
		return printJSON(props)
	}

	printInfo("\nProperties (%d):\n", len(props))
	for _, p := range props {
		printInfo("  %s = %s\n", p.Name, p.Value)
	}

	return nil
}
