package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/spektr-org/finlit/province"
)

// Sources names the files of one snapshot. An empty path skips that
// dataset. The boundary file is optional: when it does not exist the
// snapshot loads without it.
type Sources struct {
	Survey   string
	Profile  string
	Regional string
	Boundary string
}

// Option configures LoadSnapshot.
type Option func(*loadConfig)

type loadConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger for load progress. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *loadConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// LoadSnapshot reads every configured source concurrently. It returns once
// all readers finish, or with the first error.
func LoadSnapshot(ctx context.Context, src Sources, opts ...Option) (*Snapshot, error) {
	cfg := loadConfig{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger

	snap := &Snapshot{ID: uuid.New()}
	g, ctx := errgroup.WithContext(ctx)

	if src.Survey != "" {
		g.Go(func() error {
			rows, err := readFile(ctx, src.Survey, ReadSurvey)
			if err != nil {
				return fmt.Errorf("load survey: %w", err)
			}
			snap.Survey = rows
			log.Info("survey loaded", slog.String("path", src.Survey), slog.Int("rows", len(rows)))
			return nil
		})
	}
	if src.Profile != "" {
		g.Go(func() error {
			rows, err := readFile(ctx, src.Profile, ReadProfiles)
			if err != nil {
				return fmt.Errorf("load profiles: %w", err)
			}
			snap.Profiles = rows
			log.Info("profiles loaded", slog.String("path", src.Profile), slog.Int("rows", len(rows)))
			return nil
		})
	}
	if src.Regional != "" {
		g.Go(func() error {
			rows, err := readFile(ctx, src.Regional, ReadRegional)
			if err != nil {
				return fmt.Errorf("load regional: %w", err)
			}
			if _, dup := IndexRegional(rows, nil); len(dup) > 0 {
				log.Warn("duplicate regional provinces, keeping first", slog.Any("provinces", dup))
			}
			snap.Regional = rows
			log.Info("regional loaded", slog.String("path", src.Regional), slog.Int("rows", len(rows)))
			return nil
		})
	}
	if src.Boundary != "" {
		g.Go(func() error {
			names, err := readFile(ctx, src.Boundary, province.LoadBoundaryNames)
			if errors.Is(err, fs.ErrNotExist) {
				log.Warn("boundary file not found, map join disabled", slog.String("path", src.Boundary))
				return nil
			}
			if err != nil {
				return fmt.Errorf("load boundary: %w", err)
			}
			snap.Boundary = names
			log.Info("boundary loaded", slog.String("path", src.Boundary), slog.Int("provinces", len(names)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.LoadedAt = time.Now()
	return snap, nil
}

func readFile[T any](ctx context.Context, path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	v, err := parse(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
