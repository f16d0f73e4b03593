package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/alexanderramin/glidepath/internal/domain"
)

// BackupVersion is the document format written by Export.
const BackupVersion = 1

const (
	backupPrefix     = "backup_"
	backupExt        = ".json"
	backupTimeLayout = "20060102T150405Z"
)

// BackupDocument is the portable JSON form of a program.
type BackupDocument struct {
	Version    int              `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Snapshot   *domain.Snapshot `json:"snapshot"`
}

// BackupInfo describes one file in the backup directory.
type BackupInfo struct {
	Name      string
	Path      string
	CreatedAt time.Time
	seq       int
}

// BackupService exports and imports programs as JSON documents and keeps
// dated backups in a directory.
type BackupService struct {
	plan     *PlanController
	dir      string
	now      func() time.Time
	observer UseCaseObserver
}

func NewBackupService(ctrl *PlanController, dir string, observers ...UseCaseObserver) *BackupService {
	return &BackupService{
		plan:     ctrl,
		dir:      dir,
		now:      ctrl.now,
		observer: CombineObservers(observers...),
	}
}

func (s *BackupService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  s.now().Sub(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// Export writes the active program as an indented JSON document.
func (s *BackupService) Export(w io.Writer) error {
	snap, err := s.plan.Snapshot()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(BackupDocument{
		Version:    BackupVersion,
		ExportedAt: s.now(),
		Snapshot:   snap,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// ExportFile writes the active program to path, creating parent
// directories.
func (s *BackupService) ExportFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	if err := s.Export(f); err != nil {
		return multierr.Append(err, f.Close())
	}
	return f.Close()
}

// DecodeBackup reads and checks a backup document. Every problem found is
// reported.
func DecodeBackup(r io.Reader) (*BackupDocument, error) {
	var doc BackupDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}

	var errs error
	if doc.Version != BackupVersion {
		errs = multierr.Append(errs, fmt.Errorf("unsupported backup version %d", doc.Version))
	}
	if doc.Snapshot == nil {
		errs = multierr.Append(errs, errors.New("backup has no program"))
	} else {
		if err := doc.Snapshot.Program.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("program: %w", err))
		}
		for _, w := range doc.Snapshot.Weeks {
			if w.Week < 1 || w.Week > doc.Snapshot.Program.TotalWeeks {
				errs = multierr.Append(errs, fmt.Errorf("week %d is outside the program", w.Week))
				continue
			}
			if w.Recorded() && !domain.InWeightRange(*w.ActualWeight) {
				errs = multierr.Append(errs, fmt.Errorf("week %d: actual weight %.1f kg is out of range", w.Week, *w.ActualWeight))
			}
		}
	}
	if errs != nil {
		return nil, errs
	}
	return &doc, nil
}

// Import replaces the active program with the one in r. The current
// program, if any, is backed up first.
func (s *BackupService) Import(ctx context.Context, r io.Reader) (_ *domain.Program, err error) {
	startedAt := s.now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "import-program", startedAt, fields, err) }()

	doc, err := DecodeBackup(r)
	if err != nil {
		return nil, err
	}
	if s.plan.State() == domain.StateActive {
		info, berr := s.CreateBackup()
		if berr != nil {
			return nil, fmt.Errorf("backing up current program: %w", berr)
		}
		fields["backup"] = info.Name
	}
	fields["program"] = doc.Snapshot.Program.ID
	return s.plan.Replace(ctx, doc.Snapshot)
}

func (s *BackupService) ImportFile(ctx context.Context, path string) (*domain.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()
	return s.Import(ctx, f)
}

// CreateBackup writes the active program to a dated file in the backup
// directory.
func (s *BackupService) CreateBackup() (BackupInfo, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return BackupInfo{}, fmt.Errorf("failed to create backup directory %s: %w", s.dir, err)
	}
	createdAt := s.now().UTC().Truncate(time.Second)
	stamp := createdAt.Format(backupTimeLayout)

	for seq := 1; ; seq++ {
		name := backupPrefix + stamp + backupExt
		if seq > 1 {
			name = backupPrefix + stamp + "_" + strconv.Itoa(seq) + backupExt
		}
		path := filepath.Join(s.dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := s.ExportFile(path); err != nil {
			return BackupInfo{}, err
		}
		return BackupInfo{Name: name, Path: path, CreatedAt: createdAt, seq: seq}, nil
	}
}

// ListBackups returns the backups in the directory, newest first. A
// missing directory has no backups.
func (s *BackupService) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var out []BackupInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, ok := parseBackupName(e.Name())
		if !ok {
			continue
		}
		info.Path = filepath.Join(s.dir, e.Name())
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].seq > out[j].seq
	})
	return out, nil
}

// Restore imports the named backup file.
func (s *BackupService) Restore(ctx context.Context, name string) (*domain.Program, error) {
	if _, ok := parseBackupName(filepath.Base(name)); !ok {
		return nil, fmt.Errorf("%q is not a backup file", name)
	}
	return s.ImportFile(ctx, filepath.Join(s.dir, filepath.Base(name)))
}

func parseBackupName(name string) (BackupInfo, bool) {
	if !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupExt) {
		return BackupInfo{}, false
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), backupExt)
	stamp, seqText, hasSeq := strings.Cut(rest, "_")
	createdAt, err := time.Parse(backupTimeLayout, stamp)
	if err != nil {
		return BackupInfo{}, false
	}
	seq := 1
	if hasSeq {
		if seq, err = strconv.Atoi(seqText); err != nil {
			return BackupInfo{}, false
		}
	}
	return BackupInfo{Name: name, CreatedAt: createdAt, seq: seq}, true
}
