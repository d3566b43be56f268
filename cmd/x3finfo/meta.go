package main

import (
	"fmt"

	"github.com/joshuapare/x3fkit/pkg/x3f"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newMetaCmd())
}

func newMetaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta <file>",
		Short: "Summarize CAMF camera metadata blocks",
		Long: `The meta command summarizes every CAMF metadata block in the file. For
plain (type 2) blocks it lists the record names; for compressed (type 4/5)
blocks it reports the coded and declared decoded sizes.

Example:
  x3finfo meta SDIM0001.X3F
  x3finfo meta SDIM0001.X3F --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeta(args)
		},
	}
	return cmd
}

func runMeta(args []string) error {
	path := args[0]

	r, err := x3f.Open(path, x3f.ParseOptions{})
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer r.Close()

	blocks, err := r.MetadataBlocks()
	if err != nil {
		return fmt.Errorf("failed to read metadata blocks: %w", err)
	}

	type recordInfo struct {
		Tag  string `json:"tag"`
		Name string `json:"name"`
		Size int    `json:"size"`
	}
	type blockInfo struct {
		Type        uint32       `json:"type"`
		Compressed  bool         `json:"compressed"`
		BodySize    int          `json:"body_size"`
		DecodedSize uint32       `json:"decoded_size,omitempty"`
		Records     []recordInfo `json:"records,omitempty"`
	}
	var out []blockInfo

	for _, m := range blocks {
		info := blockInfo{
			Type:       m.Type,
			Compressed: m.Compressed(),
			BodySize:   len(m.Body()),
		}
		if m.Compressed() {
			info.DecodedSize = m.DecodedSize()
		} else {
			it := m.Records()
			for {
				rec, ok := it.Next()
				if !ok {
					break
				}
				info.Records = append(info.Records, recordInfo{
					Tag:  x3f.TagString(rec.Tag),
					Name: string(rec.Name()),
					Size: rec.Size(),
				})
			}
			if err := it.Err(); err != nil {
				return fmt.Errorf("corrupt camf block: %w", err)
			}
		}
		out = append(out, info)
	}

	if jsonOut {
		return printJSON(out)
	}

	printInfo("\nCAMF blocks (%d):\n", len(out))
	for i, b := range out {
		if b.Compressed {
			printInfo("  [%d] type %d, compressed, %d coded bytes, %d decoded\n",
				i, b.Type, b.BodySize, b.DecodedSize)
			continue
		}
		printInfo("  [%d] type %d, %d records:\n", i, b.Type, len(b.Records))
		for _, rec := range b.Records {
			printInfo("      %s  %-24s %d bytes\n", rec.Tag, rec.Name, rec.Size)
		}
	}

	return nil
}
