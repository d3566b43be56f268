package main

import (
	"fmt"

	"github.com/joshuapare/x3fkit/pkg/x3f"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newImagesCmd())
}

func newImagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images <file>",
		Short: "List the embedded image planes",
		Long: `The images command lists every image plane in the file with its kind,
pixel format tag, geometry, and payload size. No pixel data is decoded.

Example:
  x3finfo images SDIM0001.X3F
  x3finfo images SDIM0001.X3F --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImages(args)
		},
	}
	return cmd
}

func runImages(args []string) error {
	path := args[0]

	r, err := x3f.Open(path, x3f.ParseOptions{})
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer r.Close()

	planes, err := r.ImagePlanes()
	if err != nil {
		return fmt.Errorf("failed to read image planes: %w", err)
	}

	type planeInfo struct {
		Kind      uint32 `json:"kind"`
		Format    uint32 `json:"format"`
		Columns   uint32 `json:"columns"`
		Rows      uint32 `json:"rows"`
		RowStride uint32 `json:"row_stride"`
		DataSize  int    `json:"data_size"`
	}
	var out []planeInfo

	for _, p := range planes {
		out = append(out, planeInfo{
			Kind:      p.Kind,
			Format:    p.Format,
			Columns:   p.Columns,
			Rows:      p.Rows,
			RowStride: p.RowStride,
			DataSize:  len(p.Data),
		})
	}

	if jsonOut {
		return printJSON(out)
	}

	printInfo("\nImage planes (%d):\n", len(out))
	for i, p := range out {
		stride := fmt.Sprintf("%d", p.RowStride)
		if p.RowStride == 0 {
			stride = "variable"
		}
		printInfo("  [%d] kind=%d format=%d %dx%d stride=%s %d bytes\n",
			i, p.Kind, p.Format, p.Columns, p.Rows, stride, p.DataSize)
	}

	return nil
}
