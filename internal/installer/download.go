package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/quickr-dev/labctl/internal/version"
)

// DownloadError aborts the installation. Its message is printed as is.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("Failed to download agent: %v", e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// AgentFileName is the agent binary name on goos.
func AgentFileName(goos string) string {
	if goos == "windows" {
		return "agent.exe"
	}
	return "agent"
}

// DownloadURL is where the server serves the agent build for goos.
func DownloadURL(apiBase, goos string) string {
	return apiBase + "/download/agent/" + goos
}

// download streams the agent into dir. A partial file is left in place on
// failure and overwritten by the next run.
func (i *Installer) download(ctx context.Context) (string, error) {
	url := DownloadURL(i.cfg.APIBase(), i.goos)
	dest := filepath.Join(i.cfg.InstallDir, AgentFileName(i.goos))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &DownloadError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := i.http.Do(req)
	if err != nil {
		return "", &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	i.log.Info("agent download response", zap.String("url", url), zap.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return "", &DownloadError{URL: url, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return "", &DownloadError{URL: url, Err: err}
	}

	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", &DownloadError{URL: url, Err: fmt.Errorf("writing %s: %w", dest, err)}
	}

	i.log.Info("agent downloaded", zap.String("path", dest), zap.Int64("bytes", n))
	return dest, nil
}
