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
	"log/slog"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var (
		df           definitionFlags
		materialized bool
		noData       bool
	)

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a view or a materialized view",
		Long: `Create a view or a materialized view in the PostgreSQL database.

The definition is given as SQL text (--sql), as a file (--file), or as a
version of a definition file <name>_v<NN>.sql kept in the definitions
directory (--version). Trailing semicolons and whitespace are removed.

A materialized view is populated right away, unless --no-data is given.
Such a view cannot be queried until it is refreshed.

Examples:
  gnview create children --sql "SELECT * FROM people WHERE age < 18"
  gnview create people --materialized --file people.sql
  gnview create people --materialized --no-data --version 2`,
		Args: exactlyOneName,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], df, materialized, noData)
		},
	}

	createCmd.Flags().BoolVarP(&materialized, "materialized", "m", false,
		"create a materialized view")
	createCmd.Flags().BoolVar(&noData, "no-data", false,
		"create the materialized view WITH NO DATA")
	addDefinitionFlags(createCmd, &df)

	return createCmd
}

func runCreate(
	name string,
	df definitionFlags,
	materialized, noData bool,
) error {
	ctx := context.Background()

	if noData && !materialized {
		gn.Warn("--no-data applies to materialized views only, ignoring it")
	}

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

	if materialized {
		err = s.manager.CreateMaterializedView(ctx, name, def, noData)
	} else {
		err = s.manager.CreateView(ctx, name, def)
	}
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Created", "name", name, "kind", kind(materialized))
	gn.Info("Created %s <em>%s</em>", kind(materialized), name)
	return nil
}
