// Package cli is the operator command line of the portal. It registers
// accounts directly against the database and applies schema migrations.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/workshops/internal/server/services"
	"github.com/spf13/cobra"
)

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, form services.RegistrationForm) (*services.RegistrationResult, error)
}

// Migrator brings the schema up to date.
type Migrator func(ctx context.Context) error

// Backend is what the commands run against. Close releases it.
type Backend struct {
	Registrar Registrar
	Migrate   Migrator
	Close     func() error
}

// Connector opens the backend. Commands call it only when they need it, so
// help works without a database.
type Connector func(ctx context.Context) (*Backend, error)

type App struct {
	registrar Registrar
	migrate   Migrator
	reader    *bufio.Reader
	fd        int
	out       io.Writer
}

func NewApp(r Registrar, m Migrator, in io.Reader, out io.Writer) *App {
	return &App{registrar: r, migrate: m, reader: bufio.NewReader(in), fd: terminalFD(in), out: out}
}

// Migrate applies the schema migrations.
func (a *App) Migrate(ctx context.Context) error {
	if err := a.migrate(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Migrations applied")
	return nil
}

// NewRootCommand builds the command tree. Server flags such as -d or -c are
// read by the config package, so the commands let unknown flags through.
func NewRootCommand(connect Connector, in io.Reader, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "workshops-cli",
		Short:         "Operator tools for the workshop portal",
		Long:          "Operator tools for the workshop portal. Accepts the server flags (-d DSN, -b bcrypt cost, -u, -c config.json).",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	run := func(fn func(ctx context.Context, a *App) error) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := connect(ctx)
			if err != nil {
				return err
			}
			defer b.Close()
			return fn(ctx, NewApp(b.Registrar, b.Migrate, cmd.InOrStdin(), cmd.OutOrStdout()))
		}
	}

	register := &cobra.Command{
		Use:   "register",
		Short: "Create an account interactively",
		Args:  cobra.ArbitraryArgs,
		RunE:  run(func(ctx context.Context, a *App) error { return a.Register(ctx) }),
	}
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.ArbitraryArgs,
		RunE:  run(func(ctx context.Context, a *App) error { return a.Migrate(ctx) }),
	}

	for _, c := range []*cobra.Command{root, register, migrate} {
		c.FParseErrWhitelist = cobra.FParseErrWhitelist{UnknownFlags: true}
	}
	root.AddCommand(register, migrate)
	return root
}
