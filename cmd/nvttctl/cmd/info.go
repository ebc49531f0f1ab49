package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arturoc/nvidia-texture-tools/nvtt"
)

// NewInfoCmd reports the shape, state and channel ranges of a surface file.
func NewInfoCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "print surface dimensions, state and channel ranges",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("input")
			s, err := nvtt.Load(path)
			if err != nil {
				return err
			}

			fmt.Printf("%s: %dx%dx%d type=%d mipmaps=%d\n",
				path, s.Width(), s.Height(), s.Depth(), s.Type(), s.CountMipmaps())
			names := [4]string{"r", "g", "b", "a"}
			for c := 0; c < 4; c++ {
				lo, hi := s.Range(c)
				avg := s.Average(c, -1, 1)
				fmt.Printf("  %s: range [%g, %g] avg %g\n", names[c], lo, hi, avg)
			}
			slog.DebugContext(ctx, "info done", "path", path)
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("input", "i", "", "input image or .nvf file")
	cmd.MarkPersistentFlagRequired("input")
	return cmd
}
