package reliability

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/rocketfin/rocketfin/internal/database"
)

const (
	archivePrefix    = "rocketfin-backup-"
	archiveTimeFmt   = "2006-01-02-150405"
	metadataName     = "backup-metadata.json"
	minBackupsToKeep = 3
)

// ObjectStore is the slice of the object store the backup service needs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader) error
	List(ctx context.Context, keyPrefix string) ([]types.Object, error)
	Delete(ctx context.Context, key string) error
}

var _ ObjectStore = (*S3Client)(nil)

// BackupService snapshots the ledger database and ships compressed
// archives to an object store.
type BackupService struct {
	db      *database.DB
	store   ObjectStore
	dataDir string
	log     zerolog.Logger
}

// BackupMetadata describes the contents of a backup archive.
type BackupMetadata struct {
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	SizeBytes int64     `json:"size_bytes"`
	Checksum  string    `json:"checksum"`
}

// BackupInfo describes a backup archive stored remotely.
type BackupInfo struct {
	Filename  string    `json:"filename"`
	Timestamp time.Time `json:"timestamp"`
	SizeBytes int64     `json:"size_bytes"`
	AgeHours  int64     `json:"age_hours"`
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, store ObjectStore, dataDir string, log zerolog.Logger) *BackupService {
	return &BackupService{
		db:      db,
		store:   store,
		dataDir: dataDir,
		log:     log.With().Str("service", "backup").Logger(),
	}
}

// CreateAndUploadBackup snapshots the database, packs it into a tar.gz
// archive with metadata and uploads the archive.
func (s *BackupService) CreateAndUploadBackup(ctx context.Context) error {
	s.log.Info().Msg("Starting backup")
	startTime := time.Now()

	stagingDir, err := os.MkdirTemp(s.dataDir, "backup-staging-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stagingDir)

	snapshotPath := filepath.Join(stagingDir, s.db.Name()+".db")
	if err := s.snapshotDatabase(snapshotPath); err != nil {
		return fmt.Errorf("failed to snapshot database: %w", err)
	}

	info, err := os.Stat(snapshotPath)
	if err != nil {
		return fmt.Errorf("failed to stat snapshot: %w", err)
	}

	checksum, err := s.calculateChecksum(snapshotPath)
	if err != nil {
		return fmt.Errorf("failed to calculate checksum: %w", err)
	}

	metadata := BackupMetadata{
		Timestamp: time.Now().UTC(),
		Database:  s.db.Name(),
		SizeBytes: info.Size(),
		Checksum:  checksum,
	}

	metadataPath := filepath.Join(stagingDir, metadataName)
	if err := s.writeMetadata(metadataPath, metadata); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	archiveName := archivePrefix + startTime.Format(archiveTimeFmt) + ".tar.gz"
	archivePath := filepath.Join(stagingDir, archiveName)
	if err := s.createArchive(archivePath, snapshotPath, metadataPath); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer archiveFile.Close()

	if err := s.store.Upload(ctx, archiveName, archiveFile); err != nil {
		return fmt.Errorf("failed to upload archive: %w", err)
	}

	archiveInfo, _ := os.Stat(archivePath)
	s.log.Info().
		Dur("duration_ms", time.Since(startTime)).
		Str("archive", archiveName).
		Int64("size_bytes", archiveInfo.Size()).
		Msg("Backup completed successfully")

	return nil
}

// ListBackups lists backup archives stored remotely, newest first.
func (s *BackupService) ListBackups(ctx context.Context) ([]BackupInfo, error) {
	objects, err := s.store.List(ctx, archivePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	backups := make([]BackupInfo, 0, len(objects))
	now := time.Now()

	for _, obj := range objects {
		if obj.Key == nil {
			continue
		}

		filename := filepath.Base(*obj.Key)
		if !strings.HasPrefix(filename, archivePrefix) || !strings.HasSuffix(filename, ".tar.gz") {
			continue
		}

		timestampStr := strings.TrimSuffix(strings.TrimPrefix(filename, archivePrefix), ".tar.gz")
		timestamp, err := time.Parse(archiveTimeFmt, timestampStr)
		if err != nil {
			s.log.Warn().Str("filename", filename).Msg("Failed to parse timestamp from filename")
			continue
		}

		var sizeBytes int64
		if obj.Size != nil {
			sizeBytes = *obj.Size
		}

		backups = append(backups, BackupInfo{
			Filename:  filename,
			Timestamp: timestamp,
			SizeBytes: sizeBytes,
			AgeHours:  int64(now.Sub(timestamp).Hours()),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// RotateOldBackups deletes archives older than the retention period while
// always keeping the newest three. A retention of 0 keeps everything.
func (s *BackupService) RotateOldBackups(ctx context.Context, retentionDays int) error {
	backups, err := s.ListBackups(ctx)
	if err != nil {
		return err
	}

	if retentionDays <= 0 || len(backups) <= minBackupsToKeep {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	deleted := 0

	for i, backup := range backups {
		if i < minBackupsToKeep {
			continue
		}
		if backup.Timestamp.Before(cutoff) {
			if err := s.store.Delete(ctx, backup.Filename); err != nil {
				s.log.Error().Err(err).Str("filename", backup.Filename).Msg("Failed to delete old backup")
				continue
			}
			s.log.Info().Str("filename", backup.Filename).Msg("Deleted old backup")
			deleted++
		}
	}

	if deleted > 0 {
		s.log.Info().
			Int("deleted", deleted).
			Int("remaining", len(backups)-deleted).
			Msg("Backup rotation completed")
	}

	return nil
}

// snapshotDatabase writes a consistent copy of the database to path.
// VACUUM INTO produces a compacted snapshot without blocking writers.
func (s *BackupService) snapshotDatabase(path string) error {
	if _, err := s.db.Conn().Exec("VACUUM INTO ?", path); err != nil {
		return err
	}
	return nil
}

// calculateChecksum calculates SHA256 checksum of a file
func (s *BackupService) calculateChecksum(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}

// writeMetadata writes backup metadata to a JSON file
func (s *BackupService) writeMetadata(path string, metadata BackupMetadata) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(metadata)
}

// createArchive packs the snapshot and metadata into a tar.gz archive.
func (s *BackupService) createArchive(archivePath string, files ...string) error {
	archiveFile, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer archiveFile.Close()

	gzipWriter := gzip.NewWriter(archiveFile)
	defer gzipWriter.Close()

	tarWriter := tar.NewWriter(gzipWriter)
	defer tarWriter.Close()

	for _, filePath := range files {
		if err := s.addFileToArchive(tarWriter, filePath); err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", filepath.Base(filePath), err)
		}
	}

	return nil
}

// addFileToArchive adds a single file to a tar archive
func (s *BackupService) addFileToArchive(tarWriter *tar.Writer, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header := &tar.Header{
		Name:    info.Name(),
		Size:    info.Size(),
		Mode:    int64(info.Mode()),
		ModTime: info.ModTime(),
	}

	if err := tarWriter.WriteHeader(header); err != nil {
		return err
	}

	if _, err := io.Copy(tarWriter, file); err != nil {
		return err
	}

	return nil
}
