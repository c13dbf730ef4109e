// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GermanBionicSystems/badge/badge"
	"github.com/GermanBionicSystems/badge/pdfexport"
)

func renderCmd(e *env) *cobra.Command {
	var slot, mode, out string
	var pixel float64
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one slot to a PNG or PDF file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ext := strings.ToLower(filepath.Ext(out))
			if ext != ".png" && ext != ".pdf" {
				return fmt.Errorf("unknown output format %q, want .png or .pdf", ext)
			}
			state, err := parseState(slot, mode)
			if err != nil {
				return err
			}
			app, s, err := e.newApp(nil, state, false)
			if err != nil {
				return err
			}
			frame, err := app.Compute(state)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if ext == ".png" {
				badge.Commit(s, frame)
				err = png.Encode(&buf, s.Bits())
			} else {
				var ttf []byte
				if ttf, err = e.font(); err == nil {
					err = pdfexport.Export(&buf, frame, &pdfexport.Opts{
						Width:     e.cfg.Geometry.Width,
						Height:    e.cfg.Geometry.Height,
						PixelSize: pixel,
						Font:      ttf,
						EmHeight:  e.cfg.Font.Em,
					})
				}
			}
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			e.log.Info("rendered", zap.Stringer("state", state), zap.String("out", out), zap.Int("commands", len(frame)))
			return nil
		},
	}
	cmd.Flags().StringVar(&slot, "slot", "A", "slot to render")
	cmd.Flags().StringVar(&mode, "mode", "image", "image or qr")
	cmd.Flags().StringVarP(&out, "out", "o", "badge.png", "output file, .png or .pdf")
	cmd.Flags().Float64Var(&pixel, "pixel", 0.25, "PDF size of a panel pixel in millimeters")
	return cmd
}
