package lockfile

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"league-watcher/internal/config"
	"league-watcher/internal/domain"
)

// ErrClientNotFound means no running client could be discovered. It is a
// normal condition, retried on the supervisor's cadence.
var ErrClientNotFound = errors.New("league client not found")

// defaultPaths are the well-known lockfile locations per platform. The file
// exists only while the client is running.
var defaultPaths = []string{
	`C:\Riot Games\League of Legends\lockfile`,
	"/Applications/League of Legends.app/Contents/LoL/lockfile",
}

type Locator struct {
	paths  []string
	logger zerolog.Logger
}

func NewLocator(cfg *config.Config, logger zerolog.Logger) *Locator {
	paths := make([]string, 0, len(defaultPaths)+1)
	if cfg.LockfilePath != "" {
		paths = append(paths, cfg.LockfilePath)
	}
	paths = append(paths, defaultPaths...)
	return &Locator{paths: paths, logger: logger}
}

// Locate reads the first readable lockfile and returns the connection info
// it describes.
func (l *Locator) Locate() (domain.ConnectionInfo, error) {
	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		info, err := Parse(string(data))
		if err != nil {
			l.logger.Warn().Err(err).Str("path", path).Msg("malformed lockfile")
			continue
		}
		return info, nil
	}
	return domain.ConnectionInfo{}, ErrClientNotFound
}

// Parse decodes the lockfile contents: "name:pid:port:password:protocol".
func Parse(data string) (domain.ConnectionInfo, error) {
	fields := strings.Split(strings.TrimSpace(data), ":")
	if len(fields) != 5 {
		return domain.ConnectionInfo{}, fmt.Errorf("expected 5 lockfile fields, got %d", len(fields))
	}

	port, err := strconv.Atoi(fields[2])
	if err != nil {
		return domain.ConnectionInfo{}, fmt.Errorf("invalid lockfile port %q: %w", fields[2], err)
	}

	credential := base64.StdEncoding.EncodeToString([]byte("riot:" + fields[3]))
	return domain.ConnectionInfo{Port: port, Credential: credential}, nil
}
