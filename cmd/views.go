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
	"os"
	"text/tabwriter"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getViewsCmd returns the views command.
func getViewsCmd() *cobra.Command {
	var asJSON bool

	viewsCmd := &cobra.Command{
		Use:   "views",
		Short: "List views and materialized views",
		Long: `List views and materialized views reachable through the search path
of the PostgreSQL database, ordered by schema and name.

Objects outside of the public schema are shown as schema.name.
Objects that belong to extensions are not shown.

Examples:
  gnview views
  gnview views --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViews(asJSON)
		},
	}

	viewsCmd.Flags().BoolVarP(&asJSON, "json", "j", false,
		"print views with their definitions as JSON")

	return viewsCmd
}

func runViews(asJSON bool) error {
	ctx := context.Background()
	s, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	views, err := s.manager.Views(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if asJSON {
		enc := gnfmt.GNjson{Pretty: true}
		res, err := enc.Encode(views)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		fmt.Println(string(res))
		return nil
	}

	if len(views) == 0 {
		gn.Info("No views found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND")
	for _, v := range views {
		fmt.Fprintf(w, "%s\t%s\n", v.Name, kind(v.Materialized))
	}
	return w.Flush()
}
