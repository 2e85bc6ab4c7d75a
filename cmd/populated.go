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

// getPopulatedCmd returns the populated command.
func getPopulatedCmd() *cobra.Command {
	populatedCmd := &cobra.Command{
		Use:   "populated <name>",
		Short: "Tell if a materialized view holds data",
		Long: `Print 'true' if a materialized view was populated and can be
queried, 'false' if it was created WITH NO DATA and was not refreshed yet.

Examples:
  gnview populated family_stats`,
		Args: exactlyOneName,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPopulated(args[0])
		},
	}

	return populatedCmd
}

func runPopulated(name string) error {
	ctx := context.Background()

	s, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	ok, err := s.manager.IsPopulated(ctx, name)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	fmt.Println(ok)
	return nil
}
