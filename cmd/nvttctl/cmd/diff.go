package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arturoc/nvidia-texture-tools/nvtt"
)

// NewDiffCmd compares two surfaces and reports error metrics.
func NewDiffCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "compare two surfaces and report error metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			refPath, _ := cmd.Flags().GetString("reference")
			imgPath, _ := cmd.Flags().GetString("input")
			out, _ := cmd.Flags().GetString("output")
			scale, _ := cmd.Flags().GetFloat32("scale")

			ref, err := nvtt.Load(refPath)
			if err != nil {
				return err
			}
			img, err := nvtt.Load(imgPath)
			if err != nil {
				return err
			}

			rms, err := nvtt.RMSError(ref, img)
			if err != nil {
				return err
			}
			rmsAlpha, err := nvtt.RMSAlphaError(ref, img)
			if err != nil {
				return err
			}
			lab, err := nvtt.CIELabError(ref, img)
			if err != nil {
				return err
			}

			fmt.Printf("rms: %g\nrms alpha: %g\ncielab: %g\n", rms, rmsAlpha, lab)
			if ref.IsNormalMap() {
				ang, err := nvtt.AngularError(ref, img)
				if err != nil {
					return err
				}
				fmt.Printf("angular: %g\n", ang)
			}

			if out != "" {
				delta := nvtt.Diff(ref, img, scale)
				if err := nvtt.Save(out, delta); err != nil {
					return err
				}
				slog.InfoContext(ctx, "wrote diff image", "path", out)
			}
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("reference", "r", "", "reference image or .nvf file")
	pf.StringP("input", "i", "", "image to compare against the reference")
	pf.StringP("output", "o", "", "optional diff image output")
	pf.Float32("scale", 1, "scale applied to the diff image delta")
	cmd.MarkPersistentFlagRequired("reference")
	cmd.MarkPersistentFlagRequired("input")
	return cmd
}
