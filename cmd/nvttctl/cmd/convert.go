package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arturoc/nvidia-texture-tools/nvtt"
)

// NewConvertCmd loads an image, applies a color-space encoding and writes the
// result.
func NewConvertCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "apply a color-space encoding to a surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("input")
			out, _ := cmd.Flags().GetString("output")
			encoding, _ := cmd.Flags().GetString("encoding")
			rangeMax, _ := cmd.Flags().GetFloat32("range")

			s, err := nvtt.Load(in)
			if err != nil {
				return err
			}

			switch encoding {
			case "srgb":
				s.ToSrgb()
			case "linear":
				s.ToLinearFromSrgb()
			case "xenon-srgb":
				s.ToXenonSrgb()
			case "rgbm":
				s.ToRGBM(rangeMax, 0.25)
			case "rgbm-decode":
				s.FromRGBM(rangeMax)
			case "rgbe":
				s.ToRGBE(9, 5)
			case "rgbe-decode":
				s.FromRGBE(9, 5)
			case "ycocg":
				s.ToYCoCg()
				s.BlockScaleCoCg(5)
			case "ycocg-decode":
				s.FromYCoCg()
			case "luvw":
				s.ToLUVW(rangeMax)
			case "luvw-decode":
				s.FromLUVW(rangeMax)
			default:
				return fmt.Errorf("unknown encoding %q", encoding)
			}

			slog.InfoContext(ctx, "converted", "input", in, "encoding", encoding)
			return nvtt.Save(out, s)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("input", "i", "", "input image or .nvf file")
	pf.StringP("output", "o", "", "output file")
	pf.StringP("encoding", "e", "srgb", "encoding (srgb|linear|xenon-srgb|rgbm|rgbe|ycocg|luvw, or *-decode)")
	pf.Float32("range", 1, "value range for rgbm/luvw encodings")
	cmd.MarkPersistentFlagRequired("input")
	cmd.MarkPersistentFlagRequired("output")
	return cmd
}
