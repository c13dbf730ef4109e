// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GermanBionicSystems/badge/store"
)

func convertCmd(e *env) *cobra.Command {
	var slot string
	var dither bool
	cmd := &cobra.Command{
		Use:   "convert <image>",
		Short: "Convert a PNG, JPEG or GIF into the picture of a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.ParseSlot(slot)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dither") {
				dither = e.cfg.Store.Dither
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			st := e.store()
			g := e.cfg.Geometry
			bmp, err := store.ImportImage(f, g.ImageWidth, g.Height, dither)
			if err != nil {
				return err
			}
			if err := st.Init(); err != nil {
				return err
			}
			if err := st.SaveImage(s, bmp); err != nil {
				return err
			}
			e.log.Info("converted", zap.String("from", args[0]), zap.Stringer("slot", s), zap.Bool("dither", dither))
			return nil
		},
	}
	cmd.Flags().StringVar(&slot, "slot", "A", "slot receiving the picture")
	cmd.Flags().BoolVar(&dither, "dither", false, "dither instead of thresholding (default from the configuration)")
	return cmd
}
