package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arturoc/nvidia-texture-tools/nvtt"
)

func mipmapFilterByName(name string) (nvtt.MipmapFilter, error) {
	switch name {
	case "box":
		return nvtt.MipmapBox, nil
	case "triangle":
		return nvtt.MipmapTriangle, nil
	case "kaiser":
		return nvtt.MipmapKaiser, nil
	}
	return 0, fmt.Errorf("unknown filter %q", name)
}

// NewMipmapCmd writes the full mipmap chain of a surface, one file per level.
func NewMipmapCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mipmap",
		Short: "generate the mipmap chain of a surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("input")
			out, _ := cmd.Flags().GetString("output")
			filterName, _ := cmd.Flags().GetString("filter")

			f, err := mipmapFilterByName(filterName)
			if err != nil {
				return err
			}

			s, err := nvtt.Load(in)
			if err != nil {
				return err
			}

			ext := filepath.Ext(out)
			stem := strings.TrimSuffix(out, ext)

			level := 0
			for {
				path := fmt.Sprintf("%s_mip%d%s", stem, level, ext)
				if err := nvtt.Save(path, s); err != nil {
					return err
				}
				slog.InfoContext(ctx, "wrote level",
					"path", path, "width", s.Width(), "height", s.Height())
				if !s.BuildNextMipmapDefault(f) {
					return nil
				}
				level++
			}
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("input", "i", "", "input image or .nvf file")
	pf.StringP("output", "o", "", "output file pattern, level index is appended to the stem")
	pf.StringP("filter", "f", "box", "mipmap filter (box|triangle|kaiser)")
	cmd.MarkPersistentFlagRequired("input")
	cmd.MarkPersistentFlagRequired("output")
	return cmd
}
