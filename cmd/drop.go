/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getDropCmd returns the drop command.
func getDropCmd() *cobra.Command {
	var materialized bool

	dropCmd := &cobra.Command{
		Use:   "drop <name>",
		Short: "Drop a view or a materialized view",
		Long: `Drop a view or a materialized view. Objects that depend on it
prevent the drop, they have to be dropped first.

Examples:
  gnview drop children
  gnview drop people --materialized`,
		Args: exactlyOneName,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrop(args[0], materialized)
		},
	}

	dropCmd.Flags().BoolVarP(&materialized, "materialized", "m", false,
		"drop a materialized view")

	return dropCmd
}

func runDrop(name string, materialized bool) error {
	ctx := context.Background()

	s, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	if materialized {
		err = s.manager.DropMaterializedView(ctx, name)
	} else {
		err = s.manager.DropView(ctx, name)
	}
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Dropped %s <em>%s</em>", kind(materialized), name)
	return nil
}
