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
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnview/internal/iocatalog"
	"github.com/gnames/gnview/internal/iorefresh"
	"github.com/gnames/gnview/internal/ioview"
	"github.com/gnames/gnview/pkg/view"
	"github.com/spf13/cobra"
)

// getRefreshCmd returns the refresh command.
func getRefreshCmd() *cobra.Command {
	refreshCmd := &cobra.Command{
		Use:   "refresh <name>",
		Short: "Refresh a materialized view",
		Long: `Refresh the data of a materialized view.

With --cascade, materialized views the target reads from (directly or
through plain views) are refreshed first, in dependency order.

With --concurrently, the view stays readable during the refresh. This
requires a unique index without WHERE clause and without expressions on
the view. A view that was never populated is refreshed the standard way.
Dependencies that cannot be refreshed concurrently are refreshed the
standard way as well.

Defaults for both flags come from the 'view' section of the config file.

Examples:
  gnview refresh family_stats
  gnview refresh family_stats --cascade --concurrently`,
		Args: exactlyOneName,
		RunE: runRefresh,
	}

	refreshCmd.Flags().BoolP("cascade", "c", false,
		"refresh dependencies first")
	refreshCmd.Flags().Bool("concurrently", false,
		"refresh without locking out readers")

	return refreshCmd
}

func runRefresh(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	name := args[0]
	cascade := boolFlag(cmd, "cascade", cfg.View.Cascade)
	concurrently := boolFlag(cmd, "concurrently", cfg.View.Concurrently)

	var bar *pb.ProgressBar
	observer := func(ev iorefresh.Event) {
		if ev.Total < 2 {
			return
		}
		if bar == nil {
			bar = newProgressBar(ev.Total, "Refreshing: ")
		}
		bar.Increment()
	}

	s, err := connect(ctx, ioview.OptRefreshObserver(observer))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	start := time.Now()
	err = s.manager.RefreshMaterializedView(ctx, name, cascade, concurrently)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	dur := time.Since(start).Seconds()

	n, err := view.ParseName(name)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	count, err := iocatalog.New(s.gate).RowCount(ctx, s.conn, n)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Refreshed <em>%s</em>: %s rows in %s",
		name, humanize.Comma(count), gnfmt.TimeString(dur),
	)
	return nil
}
