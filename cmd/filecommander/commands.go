package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"

	"github.com/IvanShishkin/filecommander/internal/core"
	"github.com/IvanShishkin/filecommander/internal/filesystem"
	"github.com/IvanShishkin/filecommander/internal/server"
	"github.com/IvanShishkin/filecommander/pkg/models"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// moveCmd creates the move command
func moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <source> <destination-dir>",
		Short: "Move one file into a directory",
		Long: `Move a single regular file into an existing directory, keeping its name.
A file with the same name in the destination is replaced.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := filesystem.MoveFile(args[0], args[1])
			if err != nil {
				logger.Error("Move failed",
					zap.String("source", args[0]),
					zap.String("destination", args[1]),
					zap.Error(err))
				return err
			}

			pterm.Success.Printfln("Moved to %s", target)
			return nil
		},
	}
}

// serveCmd creates the serve command
func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog browsing API",
		Long:  `Start an HTTP API for scanning, filtering, exporting and moving files.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Address = addr
			}

			scanner, err := core.NewScanner(cfg, logger)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			printBanner()
			pterm.Printfln("  %s http://%s", pterm.Gray("Server:"), cfg.Server.Address)
			pterm.Printfln("  %s   %s", pterm.Gray("Root:"), cfg.Root)
			pterm.Println()

			return server.New(scanner, logger).ListenAndServe(ctx, cfg.Server.Address)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, 127.0.0.1:8085)")
	return cmd
}

// typesCmd creates the types command
func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List file types and their extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			scanner, err := core.NewScanner(cfg, logger)
			if err != nil {
				return err
			}

			classifier := scanner.Classifier()
			data := pterm.TableData{{"Type", "Extensions"}}
			for _, ft := range models.FileTypes {
				exts := classifier.Extensions(ft)
				if ft == models.FileTypeOther {
					exts = []string{"everything else"}
				}
				data = append(data, []string{string(ft), strings.Join(exts, " ")})
			}

			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}
}
