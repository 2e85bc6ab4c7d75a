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
	"fmt"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getUpdateCmd returns the update command.
func getUpdateCmd() *cobra.Command {
	var df definitionFlags

	updateCmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Change the definition of a materialized view",
		Long: `Change the definition of a materialized view.

By default the view is dropped and created again in one transaction.
Readers are blocked while the new view is populated. Indexes of the old
view are not recreated, create them again after the update.

With --side-by-side, the new view is built and populated under a
temporary name first and then swapped in with renames inside one short
transaction, so the name keeps answering queries during the update.

Examples:
  gnview update family_stats --version 3
  gnview update family_stats --file stats.sql --side-by-side`,
		Args: exactlyOneName,
		RunE: func(cmd *cobra.Command, args []string) error {
			sideBySide := boolFlag(cmd, "side-by-side", cfg.View.SideBySide)
			return runUpdate(args[0], df, sideBySide)
		},
	}

	updateCmd.Flags().Bool("side-by-side", false,
		"build the new view under a temporary name and swap it in")
	addDefinitionFlags(updateCmd, &df)

	return updateCmd
}

func runUpdate(name string, df definitionFlags, sideBySide bool) error {
	ctx := context.Background()

	def, err := df.definition(name)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	s, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	err = s.manager.UpdateMaterializedView(ctx, name, def, sideBySide)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	warn, info := updateMessages(name, sideBySide)
	gn.Warn(warn)
	gn.Info(info)
	return nil
}

// updateMessages returns the warning and the summary printed after an
// update. Both strategies drop the previous version with its indexes.
func updateMessages(name string, sideBySide bool) (warn, info string) {
	warn = fmt.Sprintf(
		"Indexes of <em>%s</em> were dropped with the previous version, "+
			"create them again", name)
	strategy := "in place"
	if sideBySide {
		strategy = "side by side"
	}
	info = fmt.Sprintf(
		"Updated materialized view <em>%s</em> %s", name, strategy)
	return warn, info
}
