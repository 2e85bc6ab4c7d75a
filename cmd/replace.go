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

// getReplaceCmd returns the replace command.
func getReplaceCmd() *cobra.Command {
	var df definitionFlags

	replaceCmd := &cobra.Command{
		Use:   "replace <name>",
		Short: "Replace the definition of a view",
		Long: `Replace the definition of a plain view in place with
CREATE OR REPLACE VIEW. PostgreSQL allows adding columns at the end, but
not removing or renaming existing ones.

Use 'gnview update' for materialized views.

Examples:
  gnview replace children --sql "SELECT * FROM people WHERE age < 13"
  gnview replace children --version 3`,
		Args: exactlyOneName,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(args[0], df)
		},
	}

	addDefinitionFlags(replaceCmd, &df)

	return replaceCmd
}

func runReplace(name string, df definitionFlags) error {
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

	if err = s.manager.ReplaceView(ctx, name, def); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Replaced view <em>%s</em>", name)
	return nil
}
