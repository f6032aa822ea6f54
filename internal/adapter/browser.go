package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// imdbTitleURL is the public page of a title
const imdbTitleURL = "https://www.imdb.com/title/"

// Browser opens web pages in an external program
type Browser struct {
	command string   // configured command, empty for system default
	args    []string // additional arguments before the URL
	logger  *slog.Logger
}

// NewBrowser creates a browser launcher. command may carry arguments,
// e.g. "firefox --new-tab"; empty uses the system default handler.
func NewBrowser(command string, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.Default()
	}
	fields := strings.Fields(command)
	b := &Browser{logger: logger}
	if len(fields) > 0 {
		b.command = fields[0]
		b.args = fields[1:]
	}
	return b
}

// IMDbURL returns the IMDb page for imdbID
func IMDbURL(imdbID string) string {
	return imdbTitleURL + imdbID + "/"
}

// Open launches url without waiting for the program to exit
func (b *Browser) Open(url string) error {
	if b.command == "" {
		return b.openDefault(url)
	}

	if _, err := exec.LookPath(b.command); err != nil {
		return fmt.Errorf("browser %q not found: %w", b.command, err)
	}

	args := append(append([]string{}, b.args...), url)
	b.logger.Info("opening with configured browser", "command", b.command, "url", url)
	return exec.Command(b.command, args...).Start()
}

// openDefault opens the URL using the system default handler
func (b *Browser) openDefault(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		// Linux and other Unix-like systems
		cmd = exec.Command("xdg-open", url)
	}

	b.logger.Info("opening with system default", "os", runtime.GOOS, "url", url)
	return cmd.Start()
}
