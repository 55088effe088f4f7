package reliability

import (
	"context"
	"fmt"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rocketfin/rocketfin/internal/database"
)

// MaintenanceJob performs nightly database maintenance: integrity check,
// WAL checkpoint, and a disk-space guard.
type MaintenanceJob struct {
	db      *database.DB
	dataDir string
	log     zerolog.Logger
}

// NewMaintenanceJob creates a new maintenance job
func NewMaintenanceJob(db *database.DB, dataDir string, log zerolog.Logger) *MaintenanceJob {
	return &MaintenanceJob{
		db:      db,
		dataDir: dataDir,
		log:     log.With().Str("job", "maintenance").Logger(),
	}
}

// Name returns the job name for scheduler
func (j *MaintenanceJob) Name() string {
	return "maintenance"
}

// Run executes the maintenance job
func (j *MaintenanceJob) Run() error {
	j.log.Info().Msg("Starting maintenance")
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := j.db.HealthCheck(ctx); err != nil {
		j.log.Error().Err(err).Msg("Integrity check failed")
		return fmt.Errorf("integrity check failed: %w", err)
	}

	if err := j.db.WALCheckpoint("TRUNCATE"); err != nil {
		// Not fatal, the next checkpoint will catch up
		j.log.Warn().Err(err).Msg("WAL checkpoint failed")
	}

	if err := j.checkDiskSpace(); err != nil {
		return err
	}

	stats, err := j.db.GetStats()
	if err == nil {
		j.log.Info().
			Int64("size_bytes", stats.SizeBytes).
			Int64("wal_size_bytes", stats.WALSizeBytes).
			Int64("freelist_count", stats.FreelistCount).
			Msg("Database metrics")
	}

	j.log.Info().
		Dur("duration_ms", time.Since(startTime)).
		Msg("Maintenance completed successfully")

	return nil
}

// checkDiskSpace verifies sufficient disk space is available
func (j *MaintenanceJob) checkDiskSpace() error {
	stat := syscall.Statfs_t{}
	if err := syscall.Statfs(j.dataDir, &stat); err != nil {
		return fmt.Errorf("failed to stat filesystem: %w", err)
	}

	availableBytes := stat.Bavail * uint64(stat.Bsize)
	availableGB := float64(availableBytes) / 1e9

	j.log.Debug().Float64("available_gb", availableGB).Msg("Disk space check")

	if availableGB < 0.5 {
		j.log.Error().
			Float64("available_gb", availableGB).
			Msg("Insufficient disk space")
		return fmt.Errorf("only %.2f GB free on data filesystem", availableGB)
	}

	if availableGB < 5.0 {
		j.log.Warn().
			Float64("available_gb", availableGB).
			Msg("Disk space running low")
	}

	return nil
}
