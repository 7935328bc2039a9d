// File: internal/orchestrator/orchestrator.go
// The scan pipeline: walk, read and analyze concurrently, resolve edges, lay
// out nodes, assemble the snapshot. The snapshot is built entirely here and
// returned whole; callers never observe intermediate state. Per-file trouble
// is logged and skipped, an unreadable root is the only fatal condition.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
	"github.com/Amrlmlna/dyad-scan/internal/classifier"
	"github.com/Amrlmlna/dyad-scan/internal/config"
	"github.com/Amrlmlna/dyad-scan/internal/extractor"
	"github.com/Amrlmlna/dyad-scan/internal/layout"
	"github.com/Amrlmlna/dyad-scan/internal/resolver"
	"github.com/Amrlmlna/dyad-scan/internal/walker"
)

// Orchestrator runs structure scans.
type Orchestrator struct {
	cfg       *config.Config
	logger    *zap.Logger
	walker    *walker.Walker
	extractor *extractor.Extractor
	resolver  *resolver.Resolver
}

// New wires an Orchestrator from configuration.
func New(cfg *config.Config, logger *zap.Logger) *Orchestrator {
	logger = logger.Named("orchestrator")
	return &Orchestrator{
		cfg:       cfg,
		logger:    logger,
		walker:    walker.New(logger, cfg.Scan.MaxFileSize),
		extractor: extractor.New(logger),
		resolver:  resolver.New(logger),
	}
}

// Scan analyzes the project under root and returns a complete snapshot. The
// returned error is a *walker.RootError when the root cannot be read, or the
// context's error when the caller cancels; nothing else fails a scan.
func (o *Orchestrator) Scan(ctx context.Context, root string) (*schemas.Snapshot, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &walker.RootError{Path: root, Err: err}
	}

	started := time.Now().UTC()
	paths, err := o.walker.Walk(absRoot)
	if err != nil {
		return nil, err
	}
	o.logger.Info("Walk complete",
		zap.String("root", absRoot), zap.Int("candidates", len(paths)))

	files, err := o.analyzeAll(ctx, absRoot, paths)
	if err != nil {
		return nil, err
	}

	relationships := o.resolver.Resolve(files)
	for i, pos := range layout.Positions(len(files)) {
		files[i].Position = pos
	}

	snapshot := &schemas.Snapshot{
		ScanID:        uuid.NewString(),
		ProjectRoot:   absRoot,
		ScannedAt:     started,
		Files:         files,
		Relationships: relationships,
		VCS:           vcsInfo(absRoot, o.logger),
	}
	o.logger.Info("Scan complete",
		zap.String("scan_id", snapshot.ScanID),
		zap.Int("files", len(files)),
		zap.Int("relationships", len(relationships)),
		zap.Duration("elapsed", time.Since(started)))
	return snapshot, nil
}

// analyzeAll fans the per-file analysis out over a bounded worker pool. The
// result order is the walk order regardless of completion order; unreadable
// files leave a gap that is compacted away.
func (o *Orchestrator) analyzeAll(ctx context.Context, absRoot string, paths []string) ([]schemas.ScannedFile, error) {
	results := make([]*schemas.ScannedFile, len(paths))
	readSlots := semaphore.NewWeighted(int64(o.cfg.Scan.MaxOpenFiles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Scan.WorkerConcurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			file, err := o.analyzeOne(ctx, readSlots, absRoot, path)
			if err != nil {
				return err
			}
			results[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan canceled: %w", err)
	}

	files := make([]schemas.ScannedFile, 0, len(results))
	for _, file := range results {
		if file != nil {
			files = append(files, *file)
		}
	}
	return files, nil
}

// analyzeOne reads, classifies and extracts a single file. A read failure
// returns (nil, nil): the file is skipped, the scan goes on. Only a context
// cancellation propagates as an error.
func (o *Orchestrator) analyzeOne(ctx context.Context, readSlots *semaphore.Weighted, absRoot, path string) (*schemas.ScannedFile, error) {
	if err := readSlots.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	readSlots.Release(1)
	if err != nil {
		o.logger.Warn("Cannot read file, skipping",
			zap.String("path", path), zap.Error(err))
		return nil, nil
	}

	rel, err := filepath.Rel(absRoot, path)
	if err != nil {
		rel = path
	}
	relPath := schemas.NormalizePath(rel)

	body := string(content)
	role := classifier.Classify(relPath, body)
	facts := o.extractor.Extract(relPath, body, role)

	return &schemas.ScannedFile{
		ID:               schemas.FileID(relPath),
		Path:             relPath,
		Role:             role,
		Lines:            strings.Count(body, "\n") + 1,
		Imports:          facts.Imports,
		Exports:          facts.Exports,
		HasDefaultExport: facts.HasDefaultExport,
		Endpoints:        facts.Endpoints,
		Functions:        facts.Functions,
		Classes:          facts.Classes,
		CodeBlocks:       facts.CodeBlocks,
		Content:          body,
	}, nil
}

// vcsInfo reads branch and commit from a repository at root, if one exists.
// Any trouble means no VCS block, never a failed scan.
func vcsInfo(root string, logger *zap.Logger) *schemas.VCSInfo {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil
	}
	head, err := repo.Head()
	if err != nil {
		logger.Debug("Repository has no readable HEAD", zap.Error(err))
		return nil
	}
	info := &schemas.VCSInfo{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return info
}
