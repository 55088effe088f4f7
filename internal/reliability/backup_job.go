package reliability

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// BackupJob adapts the backup service to the scheduler's Job interface.
type BackupJob struct {
	service       *BackupService
	retentionDays int
	log           zerolog.Logger
}

// NewBackupJob creates a new backup job
func NewBackupJob(service *BackupService, retentionDays int, log zerolog.Logger) *BackupJob {
	return &BackupJob{
		service:       service,
		retentionDays: retentionDays,
		log:           log.With().Str("job", "backup").Logger(),
	}
}

// Name returns the job name for scheduler
func (j *BackupJob) Name() string {
	return "backup"
}

// Run executes the backup job
func (j *BackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	if err := j.service.CreateAndUploadBackup(ctx); err != nil {
		return err
	}

	if err := j.service.RotateOldBackups(ctx, j.retentionDays); err != nil {
		// Rotation failure leaves extra archives behind, nothing is lost
		j.log.Warn().Err(err).Msg("Backup rotation failed")
	}

	return nil
}
