package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arturoc/nvidia-texture-tools/nvtt"
)

func resizeFilterByName(name string) (nvtt.ResizeFilter, error) {
	switch name {
	case "box":
		return nvtt.ResizeBox, nil
	case "triangle":
		return nvtt.ResizeTriangle, nil
	case "kaiser":
		return nvtt.ResizeKaiser, nil
	case "mitchell":
		return nvtt.ResizeMitchell, nil
	}
	return 0, fmt.Errorf("unknown filter %q", name)
}

func roundModeByName(name string) (nvtt.RoundMode, error) {
	switch name {
	case "none":
		return nvtt.RoundNone, nil
	case "next":
		return nvtt.RoundToNextPowerOfTwo, nil
	case "nearest":
		return nvtt.RoundToNearestPowerOfTwo, nil
	case "previous":
		return nvtt.RoundToPreviousPowerOfTwo, nil
	}
	return 0, fmt.Errorf("unknown round mode %q", name)
}

// NewResizeCmd resamples a surface to a capped extent with power-of-two
// rounding.
func NewResizeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize",
		Short: "resample a surface to a maximum extent",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("input")
			out, _ := cmd.Flags().GetString("output")
			maxExtent, _ := cmd.Flags().GetInt("max-extent")
			filterName, _ := cmd.Flags().GetString("filter")
			roundName, _ := cmd.Flags().GetString("round")

			f, err := resizeFilterByName(filterName)
			if err != nil {
				return err
			}
			rm, err := roundModeByName(roundName)
			if err != nil {
				return err
			}

			s, err := nvtt.Load(in)
			if err != nil {
				return err
			}
			s.ResizeMaxExtentDefault(maxExtent, rm, f)

			slog.InfoContext(ctx, "resized",
				"input", in, "width", s.Width(), "height", s.Height())
			return nvtt.Save(out, s)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("input", "i", "", "input image or .nvf file")
	pf.StringP("output", "o", "", "output file")
	pf.Int("max-extent", 1024, "maximum extent of the resized surface")
	pf.StringP("filter", "f", "kaiser", "resize filter (box|triangle|kaiser|mitchell)")
	pf.StringP("round", "r", "none", "extent rounding (none|next|nearest|previous)")
	cmd.MarkPersistentFlagRequired("input")
	cmd.MarkPersistentFlagRequired("output")
	return cmd
}
