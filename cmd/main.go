package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"mediaflow/api"
	"mediaflow/auth"
	"mediaflow/domain"
	"mediaflow/observability"
	"mediaflow/processing"
	"mediaflow/runtime"
	"mediaflow/runtime/workers"
	"mediaflow/storage"
	"mediaflow/transfer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, runs the batch and centralizes error
// reporting, so every defer fires before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	paths := os.Args[1:]
	if len(paths) == 0 {
		return fmt.Errorf("usage: %s <file> [file...]", os.Args[0])
	}

	// 2. Credentials. A JWT gets its expiry checked locally; anything that
	// does not parse as a JWT is treated as an opaque API key.
	var tokens auth.TokenProvider
	if static, err := auth.NewStaticToken(config.APIToken); err == nil {
		tokens = static
		log.Debug("Bearer token parsed as JWT", "expires_in", static.ExpiresIn())
	} else {
		tokens = auth.OpaqueToken(config.APIToken)
	}

	// 3. Transfer pipeline
	httpClient := &http.Client{Timeout: config.HTTPTimeout}
	backend := api.NewClient(config.APIAddr, httpClient, tokens, log)
	monitor := observability.NewTransferMonitor(log)
	trigger := processing.NewTrigger(backend, log).WithPollInterval(config.PollInterval)

	coordinator := runtime.NewCoordinator(log,
		transfer.NewSingleTransfer(backend, httpClient, monitor, log),
		nil, // multipart transfer needs the coordinator's event channel, wired below
		trigger, monitor, workers.NewSupervisor(log),
		config.NumberOfWorkers, config.BufferSize)

	retry := transfer.RetryPolicy{MaxAttempts: config.RetryMaxAttempts, InitialInterval: config.RetryInterval}
	coordinator.SetMultipart(transfer.NewMultipartTransfer(backend, httpClient, monitor, retry, coordinator.Events(), log))

	coordinator.AddSinks(NewConsoleSink())

	// 4. Optional on-disk journal
	if config.JournalPath != "" {
		db, err := badger.Open(badger.DefaultOptions(config.JournalPath).WithLogger(nil))
		if err != nil {
			return fmt.Errorf("journal opening failed: %w", err)
		}
		defer func() {
			log.Info("Closing journal...")
			_ = db.Close()
		}()
		coordinator.AddSinks(storage.NewJournalSink(storage.NewJournalRepository(db, log), log))
	}

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Long-lived pipeline workers (fanout, heartbeat)
	go coordinator.Start(ctx)
	defer coordinator.Stop()

	// 7. Queue the files
	for _, path := range paths {
		file, f, err := domain.FileFromPath(path)
		if err != nil {
			return err
		}
		defer f.Close()
		coordinator.Add(file)
	}

	// 8. Run the batch
	coordinator.UploadAll(ctx)

	// 9. Optionally dispatch processing for every completed upload
	if config.AutoProcess {
		processAll(ctx, coordinator, config)
	}

	printSummary(coordinator)

	failed := 0
	for _, view := range coordinator.Snapshot() {
		if view.Status == domain.StatusError {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	log.Info("Batch finished cleanly")
	return nil
}

func processAll(ctx context.Context, coordinator *runtime.Coordinator, config Config) {
	req := api.StartProcessRequest{
		ProcessType:    config.ProcessType,
		TargetHardware: config.TargetHardware,
	}
	for _, view := range coordinator.Snapshot() {
		if view.Status != domain.StatusAwaitingAction {
			continue
		}
		info, err := coordinator.StartProcessing(ctx, view.Handle, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "start processing %s: %v\n", view.Name, err)
			continue
		}
		if err := coordinator.AwaitProcessing(ctx, view.Handle, info); err != nil {
			fmt.Fprintf(os.Stderr, "await processing %s: %v\n", view.Name, err)
		}
	}
}

func printSummary(coordinator *runtime.Coordinator) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"File", "Size", "Status", "Progress", "File ID"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, view := range coordinator.Snapshot() {
		progress := strconv.Itoa(view.Progress) + "%"
		if view.Progress == domain.ProgressFailed {
			progress = "failed"
		}
		table.Append([]string{
			view.Name,
			fmt.Sprintf("%.1f MB", float64(view.Size)/domain.MB),
			string(view.Status),
			progress,
			view.FileID,
		})
	}
	table.Render()
}
