package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/omdb"
	"github.com/mmcdole/popcorn/internal/service"
	"github.com/mmcdole/popcorn/internal/store"
	"github.com/mmcdole/popcorn/internal/tui"
	"github.com/mmcdole/popcorn/internal/watchlist"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

// verifyImdbID is a title every valid key can fetch
const verifyImdbID = "tt0111161"

func main() {
	var (
		showVersion bool
		configPath  string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if showVersion {
		fmt.Printf("popcorn %s\n", Version)
		return
	}

	if err := run(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// A local .env may carry POPCORN_OMDB_API_KEY; real environment wins
	_ = godotenv.Load()

	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
		closeLog = func() error { return nil }
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("starting popcorn", "version", Version)

	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, configPath, logger); err != nil {
			return err
		}
	}

	kv, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer kv.Close()

	client := omdb.NewClient(cfg.OMDb.URL, cfg.OMDb.APIKey, logger,
		omdb.WithTimeout(cfg.OMDb.Timeout),
		omdb.WithRateLimit(cfg.OMDb.RateLimit),
	)

	searchSvc := service.NewSearchService(client, cfg.UI.MinQueryLength, logger)
	detailSvc := service.NewDetailService(client, logger)
	list := watchlist.NewList(kv, cfg.Storage.WatchedKey, logger)

	model := tui.NewModel(searchSvc, detailSvc, list, cfg.UI.MaxRating, logger)
	model.Browser = adapter.NewBrowser(cfg.UI.Browser, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	// The program may exit on a signal without going through the quit key
	searchSvc.Close()
	detailSvc.Close()

	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for an OMDb API key, checks it and saves it
func runSetupFlow(cfg *adapter.Config, configPath string, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to popcorn!")
	fmt.Println("An OMDb API key is needed. Get one at https://www.omdbapi.com/apikey.aspx")
	fmt.Println()

	for {
		apiKey, err := readAPIKey()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		client := omdb.NewClient(cfg.OMDb.URL, apiKey, logger, omdb.WithTimeout(cfg.OMDb.Timeout))
		if err := verifyKeyWithSpinner(client); err != nil {
			fmt.Printf("✗ Could not verify key: %v\n", err)
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}

		cfg.OMDb.APIKey = apiKey
		break
	}

	if err := adapter.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("✓ Configuration saved!")
	return nil
}

// readAPIKey reads the key without echo when stdin is a terminal
func readAPIKey() (string, error) {
	fmt.Print("Enter your OMDb API key: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	input, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// verifyKeyWithSpinner fetches a known title with a visual spinner
func verifyKeyWithSpinner(client *omdb.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		_, err := client.GetDetail(ctx, verifyImdbID)
		resultCh <- err
	}()

	frames := spinner.Dot.Frames
	frame := 0
	fmt.Printf("\r%s Checking API key...", frames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ API key works")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", frames[frame%len(frames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("check timed out")
		}
	}
}
