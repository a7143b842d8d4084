// Command classroom prints join reports over the classroom schema.
//
//	classroom                 run every report
//	classroom report NAME...  run the named reports
//	classroom reports         list report names
//	classroom check           check the database and schema
//
// Configuration comes from CLASSROOM_ environment variables; reports go
// to stdout and logs to stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/deppfellow/classroom/internal/app"
	"github.com/deppfellow/classroom/internal/config"
	"github.com/deppfellow/classroom/internal/handler"
	"github.com/deppfellow/classroom/internal/lib/utils"
	"github.com/deppfellow/classroom/internal/logger"
	"github.com/deppfellow/classroom/internal/repository"
	"github.com/deppfellow/classroom/internal/service"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// withHandlers builds the application, runs fn and shuts everything down.
// With bootstrap off the database is opened as is, without schema setup or
// seeding.
func withHandlers(ctx context.Context, bootstrap bool, fn func(*handler.Handlers) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	var a *app.App
	if bootstrap {
		a, err = app.New(ctx, cfg, &log, loggerService)
	} else {
		a, err = app.Open(cfg, &log, loggerService)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize application")
		loggerService.Shutdown()
		return err
	}
	defer func() {
		if err := a.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	repos := repository.NewRepositories(a)
	services := service.NewServices(a, repos)
	handlers := handler.NewHandlers(a, services)

	if err := fn(handlers); err != nil {
		log.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func newRootCommand(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "classroom",
		Short:         "Print join reports over the classroom schema",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withHandlers(cmd.Context(), true, func(h *handler.Handlers) error {
				return h.Reports.RunAll(cmd.Context(), out)
			})
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "report NAME...",
			Short: "Run the named reports in order",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withHandlers(cmd.Context(), true, func(h *handler.Handlers) error {
					return h.Reports.Run(cmd.Context(), out, args...)
				})
			},
		},
		&cobra.Command{
			Use:   "reports",
			Short: "List the available reports",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return listReports(out, handler.Catalog())
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Check the database connection and the classroom schema",
			Long:  "Check pings the configured database and looks for the classroom tables. It never creates or seeds them.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withHandlers(cmd.Context(), false, func(h *handler.Handlers) error {
					report, checkErr := h.Health.Check(cmd.Context())
					if err := utils.WriteJSON(out, report); err != nil {
						return err
					}
					return checkErr
				})
			},
		},
	)

	return root
}

func listReports(out io.Writer, reports []handler.Report) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Description)
	}
	return tw.Flush()
}
