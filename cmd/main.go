package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"FloodGrid-App/internal/application"
	"FloodGrid-App/internal/config"
	"FloodGrid-App/internal/domain/helper"
	"FloodGrid-App/internal/domain/model"
	"FloodGrid-App/internal/domain/service"
	"FloodGrid-App/internal/handler"
	"FloodGrid-App/internal/infrastructure/serial"
	"FloodGrid-App/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort string

	serialPath string
	serialBaud int
	fromStdin  bool

	mappingLat    string
	mappingLng    string
	mappingOutput string
)

func main() {
	config.LoadDotEnv()

	rootCmd := &cobra.Command{
		Use:   "floodgrid",
		Short: "Flood and survivor grid dashboard backend",
		Long: `floodgrid polls the shared readings store, renders the 10x10 survey grid
around a chosen center and serves it over HTTP.`,
		RunE: runServe,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and poll loop",
		RunE:  runServe,
	}
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringVarP(&servePort, "port", "p", "", "HTTP port (overrides PORT)")
	}
	rootCmd.AddCommand(serveCmd)

	addIngestCmd(rootCmd)
	addListCmd(rootCmd)
	addMappingCmd(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spec := model.DefaultGridSpec()

	readingsRepo, closeReadings, err := buildReadingsRepository(cfg)
	if err != nil {
		return err
	}
	defer closeReadings()

	snapshotRepos, closeSnapshots := buildSnapshotRepositories(ctx, cfg, spec)
	defer closeSnapshots()

	pollUseCase := usecase.NewPollUseCase(
		service.NewGridRenderer(spec),
		service.NewReadingSimulator(spec),
		readingsRepo,
		cfg.PollInterval,
		snapshotRepos...,
	)
	readingsService := application.NewReadingsService(readingsRepo, spec)

	router := handler.SetupRouter(
		handler.NewSessionHandler(pollUseCase),
		handler.NewGridHandler(pollUseCase, spec),
		handler.NewReadingsHandler(readingsService),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 %s server starting on :%s...", handler.ServiceName, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("🛑 Shutting down...")
	if err := pollUseCase.StopSession(context.Background()); err != nil && !errors.Is(err, usecase.ErrNoActiveSession) {
		log.Printf("⚠️ Failed to stop poll session: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// addIngestCmd forwards serial receiver lines to the readings store
func addIngestCmd(rootCmd *cobra.Command) {
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Forward readings from the serial receiver to the readings store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			readingsRepo, closeReadings, err := buildReadingsRepository(cfg)
			if err != nil {
				return err
			}
			defer closeReadings()

			var source io.Reader
			if fromStdin {
				source = cmd.InOrStdin()
			} else {
				path := serialPath
				if path == "" {
					path = cfg.SerialPort
				}
				baud := serialBaud
				if baud == 0 {
					baud = cfg.SerialBaud
				}
				port, err := serial.Open(path, serial.PortOptions{BaudRate: baud})
				if err != nil {
					return err
				}
				defer port.Close()
				// unblock the scanner on Ctrl+C
				go func() {
					<-ctx.Done()
					port.Close()
				}()
				source = port
			}

			stats, err := application.NewIngestService(readingsRepo).Run(ctx, source)
			if stats != nil {
				cmd.Println(fmt.Sprintf("Lines: %d, submitted: %d, rejected: %d, failed: %d",
					stats.Lines, stats.Submitted, stats.Rejected, stats.Failed))
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	ingestCmd.Flags().StringVar(&serialPath, "port", "", "Serial port path (overrides SERIAL_PORT)")
	ingestCmd.Flags().IntVar(&serialBaud, "baud", 0, "Baud rate (overrides SERIAL_BAUD)")
	ingestCmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read lines from stdin instead of the serial port")

	rootCmd.AddCommand(ingestCmd)
}

// addListCmd prints the current dataset
func addListCmd(rootCmd *cobra.Command) {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List readings in the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			readingsRepo, closeReadings, err := buildReadingsRepository(cfg)
			if err != nil {
				return err
			}
			defer closeReadings()

			readings, err := application.NewReadingsService(readingsRepo, model.DefaultGridSpec()).
				ListReadings(cmd.Context())
			if err != nil {
				return err
			}

			if len(readings) == 0 {
				cmd.Println("No readings.")
				return nil
			}

			cmd.Println(fmt.Sprintf("Readings (%d):", len(readings)))
			for _, r := range readings {
				cmd.Println(fmt.Sprintf("Row %2d Col %2d  survivors=%d flood=%t damage=%t prediction=%t %s",
					r.Row, r.Col, r.Survivors, bool(r.Flood), bool(r.BuildingDamage), bool(r.FloodPrediction), r.Notes))
			}
			return nil
		},
	}

	rootCmd.AddCommand(listCmd)
}

// addMappingCmd writes the cell-center table for the drone
func addMappingCmd(rootCmd *cobra.Command) {
	mappingCmd := &cobra.Command{
		Use:   "mapping",
		Short: "Write the GPS position of every cell center as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lng, err := usecase.ParseCoordinates(mappingLat, mappingLng)
			if err != nil {
				return err
			}

			spec := model.DefaultGridSpec()
			mapping := helper.CellMapping(spec, (&model.Location{Latitude: lat, Longitude: lng}).ToPoint())

			if mappingOutput == "" || mappingOutput == "-" {
				return helper.WriteCellMappingCSV(cmd.OutOrStdout(), mapping)
			}

			f, err := os.Create(mappingOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", mappingOutput, err)
			}
			if err := helper.WriteCellMappingCSV(f, mapping); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", mappingOutput, err)
			}
			cmd.Println(fmt.Sprintf("Cell mapping saved to %s", mappingOutput))
			return nil
		},
	}

	mappingCmd.Flags().StringVar(&mappingLat, "lat", "", "Grid center latitude")
	mappingCmd.Flags().StringVar(&mappingLng, "lng", "", "Grid center longitude")
	mappingCmd.Flags().StringVarP(&mappingOutput, "output", "o", "-", "Output CSV path, - for stdout")
	_ = mappingCmd.MarkFlagRequired("lat")
	_ = mappingCmd.MarkFlagRequired("lng")

	rootCmd.AddCommand(mappingCmd)
}
