package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"league-watcher/internal/config"
	"league-watcher/internal/constants"
)

// Updater checks the project's release feed and downloads newer builds on
// request. Every call carries a deadline so a slow release host can never
// stall the supervisor's discovery cadence.
type Updater struct {
	client  *fasthttp.Client
	owner   string
	repo    string
	version string
	logger  zerolog.Logger
}

type release struct {
	TagName string  `json:"tag_name"`
	Assets  []asset `json:"assets"`
}

type asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

func New(cfg *config.Config, logger zerolog.Logger) *Updater {
	return &Updater{
		client: &fasthttp.Client{
			MaxConnsPerHost: 2,
			ReadTimeout:     constants.UpdateFetchTimeout,
			WriteTimeout:    10 * time.Second,
		},
		owner:   cfg.UpdateRepoOwner,
		repo:    cfg.UpdateRepoName,
		version: config.Version,
		logger:  logger,
	}
}

// Check compares the latest release tag with the built-in version and
// returns the user-visible status line.
func (u *Updater) Check(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.UpdateCheckTimeout)
	defer cancel()

	rel, err := u.latestRelease(ctx)
	if err != nil {
		return "", err
	}

	if !strings.Contains(rel.TagName, u.version) {
		return fmt.Sprintf("Program is outdated the latest version is %s", rel.TagName), nil
	}
	return "Program is up to date.", nil
}

// Download fetches every asset of the latest release next to the binary and
// returns a status line describing the result.
func (u *Updater) Download(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.UpdateFetchTimeout)
	defer cancel()

	rel, err := u.latestRelease(ctx)
	if err != nil {
		return "", err
	}

	for _, a := range rel.Assets {
		name := assetFileName(a.Name)
		u.logger.Info().Str("asset", name).Msg("downloading release asset")
		body, err := u.get(ctx, a.BrowserDownloadURL)
		if err != nil {
			return "", fmt.Errorf("failed to download %s: %w", name, err)
		}
		if err := os.WriteFile(name, body, 0o755); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	return fmt.Sprintf("Update %s downloaded.", rel.TagName), nil
}

// assetFileName strips any path components a release asset name may carry so
// downloads always land next to the binary.
func assetFileName(name string) string {
	return filepath.Base(name)
}

func (u *Updater) latestRelease(ctx context.Context) (*release, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", u.owner, u.repo)
	body, err := u.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var rel release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("failed to decode release: %w", err)
	}
	return &rel, nil
}

func (u *Updater) get(ctx context.Context, url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(fmt.Sprintf("league-watcher/%s", u.version))

	deadline, ok := ctx.Deadline()
	if ok {
		if err := u.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := u.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("release host error: %d", resp.StatusCode())
	}

	// fasthttp reuses the response buffer after release
	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return out, nil
}
