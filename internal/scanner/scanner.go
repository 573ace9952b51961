package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"setscan/internal/catalog"
	"setscan/internal/compare"
	"setscan/internal/logging"
	"setscan/internal/setlist"
	"setscan/internal/showid"
)

// Options controls how folders are interpreted during a scan.
type Options struct {
	// Band selects which act's shows are queried from the catalog.
	Band int
	// PadChars is the number of prefix characters before the date in a
	// show folder name.
	PadChars int
}

// Scanner walks show folders and reconciles their setlist documents
// against the catalog. It never writes to the audio folders, the
// documents, or the catalog.
type Scanner struct {
	catalog *catalog.Store
	engine  *compare.Engine
	opts    Options
	logger  *slog.Logger
}

func New(store *catalog.Store, engine *compare.Engine, opts Options, logger *slog.Logger) *Scanner {
	return &Scanner{
		catalog: store,
		engine:  engine,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "scanner"),
	}
}

// Run scans root, which may be either a single show folder or a tree of
// them, and returns the accumulated report.
func (s *Scanner) Run(ctx context.Context, root string) (*Report, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	if err := s.scanTree(ctx, root, report); err != nil {
		return nil, err
	}
	s.logger.Info("scan complete",
		logging.String("run_id", report.RunID),
		logging.Int("folders_scanned", report.FoldersScanned),
		logging.Int("folders_with_issues", report.FoldersWithIssues),
		logging.Int("discrepancies", len(report.Rows)))
	return report, nil
}

// scanTree recurses until it hits folders holding audio files, which are
// treated as shows. Intermediate folders (year directories and the like)
// are descended into.
func (s *Scanner) scanTree(ctx context.Context, dir string, report *Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if hasAudio(dir) {
		s.scanFolder(ctx, dir, report)
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		child := filepath.Join(dir, name)
		if hasAudio(child) {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.scanFolder(ctx, child, report)
			continue
		}
		if err := s.scanTree(ctx, child, report); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) scanFolder(ctx context.Context, folderPath string, report *Report) {
	folderName := filepath.Base(folderPath)
	report.FoldersScanned++

	date, ok := showid.ParseDate(folderName, s.opts.PadChars)
	if !ok {
		s.logger.Warn("no date in folder name, skipping",
			logging.String("folder", folderName))
		return
	}
	archiveID := showid.ParseArchiveID(folderName)
	earlyLate := showid.DetectEarlyLate(folderName)

	docPaths, err := FindDocuments(folderPath, date.String(), archiveID)
	if err != nil {
		s.logger.Warn("document discovery failed",
			logging.String("folder", folderName), logging.Error(err))
		return
	}

	displayNames := make([]string, 0, len(docPaths))
	for _, path := range docPaths {
		displayNames = append(displayNames, displayName(path, folderPath))
	}
	txtFilesStr := strings.Join(displayNames, "; ")

	s.logger.Debug("show folder",
		logging.String("folder", folderName),
		logging.String("date", date.String()),
		logging.String("archive_id", archiveID),
		logging.String("source_type", showid.DetectSourceType(folderName)),
		logging.Int("documents", len(docPaths)))

	if len(docPaths) == 0 {
		report.Rows = append(report.Rows, Row{
			FolderName: folderName,
			Date:       date.String(),
			Discrepancy: compare.Discrepancy{
				Type:    compare.TypeMissingTxt,
				SourceA: folderName,
				Details: "no setlist text file found for this show",
			},
		})
		report.FoldersWithIssues++
	}

	var docs []*setlist.Document
	for _, path := range docPaths {
		doc, err := s.parseDocument(path)
		if err != nil {
			s.logger.Debug("document not parseable as a setlist",
				logging.String("file", filepath.Base(path)), logging.Error(err))
			continue
		}
		if len(doc.Entries) > 0 {
			docs = append(docs, doc)
		}
	}

	key := catalog.ShowKey{
		Year:      date.Year,
		Month:     date.Month,
		Day:       date.Day,
		Band:      s.opts.Band,
		EarlyLate: earlyLate,
	}
	entries, err := s.catalog.Setlist(ctx, key)
	if err != nil {
		s.logger.Warn("catalog setlist query failed",
			logging.String("date", date.String()), logging.Error(err))
		return
	}
	show, err := s.catalog.ShowInfo(ctx, key)
	if err != nil && !errors.Is(err, catalog.ErrShowNotFound) {
		s.logger.Warn("catalog show query failed",
			logging.String("date", date.String()), logging.Error(err))
		return
	}

	var found []compare.Discrepancy
	if len(entries) > 0 {
		for _, doc := range docs {
			found = append(found, s.engine.CompareWithCatalog(doc, entries, show)...)
		}
	}
	for i := 0; i < len(docs); i++ {
		for j := i + 1; j < len(docs); j++ {
			found = append(found, s.engine.CompareDocuments(docs[i], docs[j])...)
		}
	}

	if len(found) > 0 {
		report.FoldersWithIssues++
		for _, disc := range found {
			report.Rows = append(report.Rows, Row{
				FolderName:    folderName,
				Date:          date.String(),
				TxtFilesFound: txtFilesStr,
				Discrepancy:   disc,
			})
		}
	}
}

func (s *Scanner) parseDocument(path string) (*setlist.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return setlist.Parse(filepath.Base(path), string(content))
}

// hasAudio reports whether dir directly contains FLAC files, which marks
// it as a show folder rather than a grouping directory.
func hasAudio(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".flac") {
			return true
		}
	}
	return false
}

// displayName shortens a document path for report rows: relative to the
// show folder's parent when possible, the bare filename otherwise.
func displayName(path, folderPath string) string {
	rel, err := filepath.Rel(filepath.Dir(folderPath), path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}
	return rel
}
