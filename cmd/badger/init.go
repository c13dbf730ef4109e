// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func initCmd(e *env) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the slot files and write the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.store().Init(); err != nil {
				return err
			}
			e.log.Info("slots ready", zap.String("dir", e.cfg.Store.Dir))

			flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
			if force {
				flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			}
			f, err := os.OpenFile(e.configPath, flags, 0o644)
			if errors.Is(err, fs.ErrExist) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s exists, keeping it\n", e.configPath)
				return nil
			}
			if err != nil {
				return err
			}
			defer f.Close()
			if _, err := e.cfg.WriteTo(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", e.configPath)
			return f.Close()
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration")
	return cmd
}
