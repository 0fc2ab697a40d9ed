package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/adapter"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// options of one client run. The client is a debugging device: it signs in,
// pulls every change after -cursor and prints what it got.
type options struct {
	address  string
	hashKey  string
	email    string
	password string
	register bool
	cursor   string
	limit    int
	retries  int
	timeout  time.Duration
}

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())

	log := logger.NewLogger("notes-sync-client")

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing flags")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, opts, log); err != nil {
		log.Fatal().Err(err).Msg("client run failed")
	}
}

func parseOptions(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("notes-sync-client", flag.ContinueOnError)
	fs.StringVar(&opts.address, "a", "localhost:8080", "server HTTP address")
	fs.StringVar(&opts.hashKey, "k", "", "request integrity key")
	fs.StringVar(&opts.email, "email", "", "account email")
	fs.StringVar(&opts.password, "password", "", "account password, already derived on the device")
	fs.BoolVar(&opts.register, "register", false, "create the account before syncing")
	fs.StringVar(&opts.cursor, "cursor", "", "sync token to resume from")
	fs.IntVar(&opts.limit, "limit", 0, "page size, 0 for the server maximum")
	fs.IntVar(&opts.retries, "retries", 3, "retries of a busy server")
	fs.DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.email == "" || opts.password == "" {
		return opts, fmt.Errorf("-email and -password are required")
	}

	return opts, nil
}

func run(ctx context.Context, opts options, log *logger.Logger) error {
	client, err := adapter.NewHTTPSyncClient(adapter.Config{
		BaseURL:    opts.address,
		HashKey:    opts.hashKey,
		Timeout:    opts.timeout,
		RetryCount: opts.retries,
	}, log)
	if err != nil {
		return err
	}

	if opts.register {
		_, err = client.Register(ctx, models.RegisterRequest{Email: opts.email, Password: opts.password})
	} else {
		_, err = client.SignIn(ctx, models.SignInRequest{Email: opts.email, Password: opts.password})
	}
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	resp, err := adapter.Drain(ctx, client, models.SyncRequest{SyncToken: opts.cursor, Limit: opts.limit})
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	for _, item := range resp.RetrievedItems {
		state := "live"
		if item.Deleted {
			state = "deleted"
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", item.UUID, item.ContentType, item.UpdatedAt.Format(time.RFC3339Nano), state)
	}
	fmt.Printf("items: %d\ncursor: %s\n", len(resp.RetrievedItems), resp.SyncToken)

	return nil
}
