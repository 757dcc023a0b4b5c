package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sync"
	"time"

	"pocket-crm/internal/common/models"
	"pocket-crm/internal/config"
	"pocket-crm/internal/features/audit"
	"pocket-crm/internal/metrics"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Reloader is told when restored data replaced the live collections.
type Reloader interface {
	Reload(ctx context.Context) error
}

type BackupService interface {
	CreateBackup(ctx context.Context) (*BackupFile, error)
	ListBackups(ctx context.Context) ([]BackupFile, error)
	DeleteBackup(ctx context.Context, name string) error
	BackupPath(name string) (string, error)
	RestoreBackup(ctx context.Context, name string) (*Manifest, error)
	ImportArchive(ctx context.Context, r io.Reader) (*BackupFile, error)

	UploadBackup(ctx context.Context, name string) (*CloudObject, error)
	ListCloudBackups(ctx context.Context) ([]CloudObject, error)
	DownloadBackup(ctx context.Context, key string) (*BackupFile, error)
	DeleteCloudBackup(ctx context.Context, key string) error

	StartSchedule() error
	StopSchedule()
}

type BackupServiceImpl struct {
	Repo         DataRepository
	Local        *LocalStore
	Cloud        CloudStore
	Reloader     Reloader
	AuditService audit.AuditService
	Config       *config.Config
	Logger       *zap.Logger

	// one backup or restore at a time
	mu        sync.Mutex
	scheduler *cron.Cron
	now       func() time.Time
}

func NewBackupService(repo DataRepository, local *LocalStore, cloud CloudStore, reloader Reloader, auditService audit.AuditService, cfg *config.Config, logger *zap.Logger) BackupService {
	return &BackupServiceImpl{
		Repo:         repo,
		Local:        local,
		Cloud:        cloud,
		Reloader:     reloader,
		AuditService: auditService,
		Config:       cfg,
		Logger:       logger,
		now:          time.Now,
	}
}

func (s *BackupServiceImpl) CreateBackup(ctx context.Context) (*BackupFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.createBackup(ctx)
	metrics.Backups.WithLabelValues("create", metrics.Outcome(err)).Inc()
	if err != nil {
		s.Logger.Error("backup failed", zap.Error(err))
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionBackup, "backup", file.Name, map[string]models.Change{
		"size": {New: file.Size},
	})
	s.Logger.Info("backup created", zap.String("name", file.Name), zap.Int64("size", file.Size))
	return file, nil
}

func (s *BackupServiceImpl) createBackup(ctx context.Context) (*BackupFile, error) {
	dump := make(Dump, len(Collections))
	for _, name := range Collections {
		docs, err := s.Repo.Dump(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("dump %s: %w", name, err)
		}
		dump[name] = docs
	}

	manifest := &Manifest{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		AppID:     s.Config.AppId,
	}
	return s.Local.Write(manifest.FileName(), func(w io.Writer) error {
		return WriteArchive(w, manifest, dump)
	})
}

func (s *BackupServiceImpl) ListBackups(ctx context.Context) ([]BackupFile, error) {
	return s.Local.List()
}

func (s *BackupServiceImpl) DeleteBackup(ctx context.Context, name string) error {
	return s.Local.Delete(name)
}

func (s *BackupServiceImpl) BackupPath(name string) (string, error) {
	if _, err := s.Local.Stat(name); err != nil {
		return "", err
	}
	return s.Local.Path(name)
}

// RestoreBackup replaces the archived collections with the archive content.
// The archive is parsed completely first; a failure while writing leaves the
// collections restored so far in place and is returned.
func (s *BackupServiceImpl) RestoreBackup(ctx context.Context, name string) (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	manifest, err := s.restore(ctx, name)
	metrics.Backups.WithLabelValues("restore", metrics.Outcome(err)).Inc()
	if err != nil {
		s.Logger.Error("restore failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	if s.Reloader != nil {
		if err := s.Reloader.Reload(ctx); err != nil {
			s.Logger.Warn("reminders not reloaded after restore", zap.Error(err))
		}
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionRestore, "backup", name, map[string]models.Change{
		"backup_id": {New: manifest.ID},
	})
	s.Logger.Info("backup restored", zap.String("name", name), zap.Any("collections", manifest.Collections))
	return manifest, nil
}

func (s *BackupServiceImpl) restore(ctx context.Context, name string) (*Manifest, error) {
	f, err := s.Local.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	manifest, dump, err := ReadArchive(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	for _, coll := range Collections {
		docs, ok := dump[coll]
		if !ok {
			continue
		}
		if err := s.Repo.Replace(ctx, coll, docs); err != nil {
			return nil, fmt.Errorf("restore %s: %w", coll, err)
		}
	}
	return manifest, nil
}

// ImportArchive stores an archive received from a client, after checking it
// parses, under its canonical name.
func (s *BackupServiceImpl) ImportArchive(ctx context.Context, r io.Reader) (*BackupFile, error) {
	tmp, err := os.CreateTemp(s.Local.Dir, ".import-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := io.Copy(tmp, r)
	if err != nil {
		return nil, err
	}
	manifest, _, err := ReadArchive(tmp, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	file, err := s.Local.Write(manifest.FileName(), func(w io.Writer) error {
		_, err := io.Copy(w, tmp)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Logger.Info("backup imported", zap.String("name", file.Name))
	return file, nil
}

func (s *BackupServiceImpl) UploadBackup(ctx context.Context, name string) (*CloudObject, error) {
	if s.Cloud == nil {
		return nil, ErrCloudDisabled
	}
	f, err := s.Local.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	key, err := s.Cloud.Upload(ctx, name, f)
	metrics.Backups.WithLabelValues("upload", metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	info, _ := f.Stat()

	obj := &CloudObject{Key: key, LastModified: s.now()}
	if info != nil {
		obj.Size = info.Size()
	}
	s.Logger.Info("backup uploaded", zap.String("name", name), zap.String("key", key))
	return obj, nil
}

func (s *BackupServiceImpl) ListCloudBackups(ctx context.Context) ([]CloudObject, error) {
	if s.Cloud == nil {
		return nil, ErrCloudDisabled
	}
	return s.Cloud.List(ctx)
}

// DownloadBackup copies a bucket archive into the local directory.
func (s *BackupServiceImpl) DownloadBackup(ctx context.Context, key string) (*BackupFile, error) {
	if s.Cloud == nil {
		return nil, ErrCloudDisabled
	}
	name := path.Base(key)
	if err := checkName(name); err != nil {
		return nil, err
	}

	file, err := s.Local.Write(name, func(w io.Writer) error {
		return s.Cloud.Download(ctx, key, w)
	})
	metrics.Backups.WithLabelValues("download", metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (s *BackupServiceImpl) DeleteCloudBackup(ctx context.Context, key string) error {
	if s.Cloud == nil {
		return ErrCloudDisabled
	}
	if err := checkName(path.Base(key)); err != nil {
		return err
	}
	return s.Cloud.Delete(ctx, key)
}

// StartSchedule runs automatic backups on BACKUP_SCHEDULE, if set.
func (s *BackupServiceImpl) StartSchedule() error {
	if s.Config.BackupSchedule == "" {
		return nil
	}
	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(s.Config.BackupSchedule, s.runScheduled); err != nil {
		return fmt.Errorf("invalid BACKUP_SCHEDULE: %w", err)
	}
	s.scheduler.Start()
	s.Logger.Info("automatic backups enabled",
		zap.String("schedule", s.Config.BackupSchedule),
		zap.Bool("upload", s.Config.AutoUpload && s.Cloud != nil),
	)
	return nil
}

func (s *BackupServiceImpl) StopSchedule() {
	if s.scheduler != nil {
		<-s.scheduler.Stop().Done()
	}
}

func (s *BackupServiceImpl) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	file, err := s.CreateBackup(ctx)
	if err != nil {
		return
	}
	if s.Config.AutoUpload && s.Cloud != nil {
		if _, err := s.UploadBackup(ctx, file.Name); err != nil {
			s.Logger.Error("automatic upload failed", zap.String("name", file.Name), zap.Error(err))
		}
	}
}
