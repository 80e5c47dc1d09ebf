package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/Monika-msk/vtu-watcher/internal/config"
	"github.com/Monika-msk/vtu-watcher/internal/fetch"
	"github.com/Monika-msk/vtu-watcher/internal/notify"
	"github.com/Monika-msk/vtu-watcher/internal/run"
	"github.com/Monika-msk/vtu-watcher/internal/secrets"
	"github.com/Monika-msk/vtu-watcher/internal/store"
)

type options struct {
	DataDir         string `short:"d" long:"data-dir" env:"WATCHER_DATA_DIR" default:"." description:"Directory holding config.yml, watcher.db and the run lock"`
	Config          string `short:"c" long:"config" description:"Config file path (default: <data-dir>/config.yml)"`
	DryRun          bool   `long:"dry-run" description:"Fetch and diff, but only log new listings; nothing is sent or persisted"`
	Debug           bool   `long:"debug" description:"Verbose per-page logging"`
	SetSMTPPassword bool   `long:"set-smtp-password" description:"Prompt for the SMTP password, store it in the OS keychain, exit"`
}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	log.SetFlags(log.LstdFlags)

	// .env is optional; cron and CI set real env vars instead
	_ = godotenv.Load()

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return 0
		}
		return 1
	}

	if err := os.MkdirAll(opts.DataDir, 0o755); err != nil {
		log.Printf("[init] data dir: %v", err)
		return 1
	}

	cfgPath := opts.Config
	if cfgPath == "" {
		var err error
		cfgPath, err = config.EnsureUserConfig(opts.DataDir)
		if err != nil {
			log.Printf("[init] config bootstrap: %v", err)
			return 1
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("[init] config load (%s): %v", cfgPath, err)
		return 1
	}
	config.OverlayEnv(&cfg)
	if opts.Debug {
		cfg.App.Debug = true
	}

	if opts.SetSMTPPassword {
		return setSMTPPassword(cfg)
	}

	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !res.OK() {
		for _, e := range res.Errors {
			log.Printf("[config] error: %s", e)
		}
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lock, err := run.AcquireLock(opts.DataDir)
	if err != nil {
		if errors.Is(err, run.ErrLocked) {
			log.Printf("[init] another run is still in progress; exiting")
		} else {
			log.Printf("[init] run lock: %v", err)
		}
		return 1
	}
	defer func() { _ = lock.Unlock() }()

	db, err := store.Open(filepath.Join(opts.DataDir, "watcher.db"))
	if err != nil {
		log.Printf("[init] open store: %v", err)
		return 1
	}
	defer db.Close()

	if err := db.ImportLegacyJSON(ctx, filepath.Join(opts.DataDir, "seen.json")); err != nil {
		log.Printf("[init] legacy import: %v", err)
	}

	limiter := fetch.NewHostLimiter(cfg.API.RatePerSec, cfg.API.RateBurst)
	client := fetch.New(fetch.Config{
		BaseURL:  cfg.API.BaseURL,
		SiteBase: cfg.API.SiteBase,
		MaxPages: cfg.API.MaxPages,
		Timeout:  time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		Debug:    cfg.App.Debug,
	}, limiter)

	runner := &run.Runner{
		Fetcher: client,
		Store:   db,
		DryRun:  opts.DryRun,
	}
	if cfg.API.Hydrate {
		runner.Hydrator = client
	}

	emailConfigured := cfg.SMTP.Username != "" && cfg.SMTP.To != ""
	if opts.DryRun || !emailConfigured {
		runner.Notifier = notify.LogOnly{}
	} else {
		account := secrets.SMTPKeyringAccount(cfg.SMTP.Username, cfg.SMTP.Host)
		password, err := secrets.GetSMTPPassword(account)
		if err != nil {
			log.Printf("[init] smtp password: %v", err)
			return 1
		}
		runner.Notifier = notify.NewMailer(notify.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			To:       cfg.SMTP.To,
		}, password)
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		log.Printf("[run] failed: %v", err)
		return 1
	}

	log.Printf("[run] done fetched=%d new=%d notified=%d dry_run=%v",
		summary.Fetched, summary.New, summary.Notified, opts.DryRun)
	return 0
}

func setSMTPPassword(cfg config.Config) int {
	if cfg.SMTP.Username == "" {
		log.Printf("[secrets] smtp.username must be set before storing a password")
		return 1
	}
	account := secrets.SMTPKeyringAccount(cfg.SMTP.Username, cfg.SMTP.Host)

	fmt.Fprintf(os.Stderr, "SMTP password for %s: ", account)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		log.Printf("[secrets] read password: %v", err)
		return 1
	}

	if err := secrets.SetSMTPPassword(account, strings.TrimSpace(line)); err != nil {
		log.Printf("[secrets] keychain store: %v", err)
		return 1
	}
	log.Printf("[secrets] password stored for %s", account)
	return 0
}
