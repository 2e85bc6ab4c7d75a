package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnview/internal/iodb"
	"github.com/gnames/gnview/internal/iodefinition"
	"github.com/gnames/gnview/internal/iofs"
	"github.com/gnames/gnview/internal/iogate"
	"github.com/gnames/gnview/internal/ioview"
	"github.com/gnames/gnview/pkg/db"
	"github.com/gnames/gnview/pkg/lifecycle"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

// definitionFlags keeps the alternative ways to pass a definition.
type definitionFlags struct {
	sql     string
	file    string
	version int
}

func addDefinitionFlags(cmd *cobra.Command, df *definitionFlags) {
	cmd.Flags().StringVarP(&df.sql, "sql", "s", "",
		"definition as SQL text")
	cmd.Flags().StringVarP(&df.file, "file", "f", "",
		"path to a file with the definition")
	cmd.Flags().IntVarP(&df.version, "version", "v", -1,
		"version of <name>_v<NN>.sql file in the definitions directory "+
			"(0 for the latest)")
	cmd.MarkFlagsMutuallyExclusive("sql", "file", "version")
}

// definition returns the definition given with one of the flags.
func (df definitionFlags) definition(name string) (string, error) {
	switch {
	case df.sql != "":
		return df.sql, nil
	case df.file != "":
		data, err := iofs.ReadFile(df.file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case df.version >= 0:
		src := iodefinition.New(cfg.View.DefinitionsDir)
		return src.Definition(name, df.version)
	default:
		return "", errors.New("one of --sql, --file or --version is required")
	}
}

// session is one backend connection with components bound to it.
type session struct {
	op      db.Operator
	conn    *pgxpool.Conn
	gate    lifecycle.Gate
	manager lifecycle.Manager
}

// connect opens the database from the config, takes one connection out of
// the pool and builds the manager on it.
func connect(ctx context.Context, opts ...ioview.Option) (*session, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	conn, err := iodb.Acquire(ctx, op)
	if err != nil {
		_ = op.Close()
		return nil, err
	}

	gn.Info("Connected to database: %s@%s:%d/%s",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	gate := iogate.New()
	opts = append([]ioview.Option{ioview.OptGate(gate)}, opts...)
	res := &session{
		op:      op,
		conn:    conn,
		gate:    gate,
		manager: ioview.New(conn, opts...),
	}
	return res, nil
}

func (s *session) Close() {
	s.conn.Release()
	_ = s.op.Close()
}

// boolFlag returns the flag value if it was set, otherwise the default from
// config.
func boolFlag(cmd *cobra.Command, name string, def bool) bool {
	if !cmd.Flags().Changed(name) {
		return def
	}
	res, err := cmd.Flags().GetBool(name)
	if err != nil {
		return def
	}
	return res
}

// newProgressBar creates a new progress bar with consistent
// settings.
func newProgressBar(
	total int,
	prefix string,
) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

func kind(materialized bool) string {
	if materialized {
		return "materialized view"
	}
	return "view"
}

func exactlyOneName(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%s needs exactly one view name", cmd.Name())
	}
	return nil
}
