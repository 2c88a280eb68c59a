package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yungbote/catalogue-etl/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "catalogue-etl",
	Short: "Catalogue metadata ETL service",
	Long: "Harvests dataset metadata from the catalogue in JSON, ISO 19115, JSON-LD and Turtle, " +
		"keeps the relational model up to date and feeds the embedding queue.",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the embedding queue poller",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			a.Start(ctx)
			return a.Run(ctx)
		})
	},
}

var processCmd = &cobra.Command{
	Use:   "process <identifier>",
	Short: "Process a single dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			res := a.ProcessDataset(ctx, args[0])
			if err := printJSON(res); err != nil {
				return err
			}
			if !res.IsSuccess {
				return fmt.Errorf("%s", res.Message)
			}
			return nil
		})
	},
}

var processAllCmd = &cobra.Command{
	Use:   "process-all",
	Short: "Process every identifier in the metadata identifiers file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			res := a.ProcessAll(ctx)
			if err := printJSON(res); err != nil {
				return err
			}
			if !res.IsSuccess {
				return fmt.Errorf("%s", res.Message)
			}
			return nil
		})
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			if err := a.Migrate(); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			a.Log.Info("Schema up to date")
			return nil
		})
	},
}

func withApp(ctx context.Context, fn func(context.Context, *app.App) error) error {
	a, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(serveCmd, processCmd, processAllCmd, migrateCmd)
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
