package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/rocketfin/rocketfin/internal/database"
)

// SystemHandlers serves system monitoring endpoints
type SystemHandlers struct {
	log       zerolog.Logger
	dataDir   string
	db        *database.DB
	startedAt time.Time
}

// NewSystemHandlers creates system monitoring handlers
func NewSystemHandlers(log zerolog.Logger, dataDir string, db *database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("handler", "system").Logger(),
		dataDir:   dataDir,
		db:        db,
		startedAt: time.Now(),
	}
}

// SystemStatusResponse is the payload for GET /api/system/status
type SystemStatusResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	RAMPercent    float64 `json:"ram_percent"`
	Database      string  `json:"database"`
}

// DatabaseStatsResponse is the payload for GET /api/system/database/stats
type DatabaseStatsResponse struct {
	SizeBytes     int64 `json:"size_bytes"`
	WALSizeBytes  int64 `json:"wal_size_bytes"`
	PageCount     int64 `json:"page_count"`
	PageSize      int64 `json:"page_size"`
	FreelistCount int64 `json:"freelist_count"`
}

// DiskUsageResponse is the payload for GET /api/system/disk
type DiskUsageResponse struct {
	DataDirMB  float64 `json:"data_dir_mb"`
	BackupsMB  float64 `json:"backups_mb"`
	DatabaseMB float64 `json:"database_mb"`
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := h.getSystemStats()

	dbStatus := "ok"
	if err := h.db.QuickCheck(r.Context()); err != nil {
		h.log.Warn().Err(err).Msg("Database ping failed")
		dbStatus = "unreachable"
	}

	status := "healthy"
	if dbStatus != "ok" {
		status = "degraded"
	}

	h.writeJSON(w, SystemStatusResponse{
		Status:        status,
		UptimeSeconds: time.Since(h.startedAt).Seconds(),
		CPUPercent:    cpuPercent,
		RAMPercent:    ramPercent,
		Database:      dbStatus,
	})
}

// HandleDatabaseStats handles GET /api/system/database/stats
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.GetStats()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read database stats")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "failed to read database stats"})
		return
	}

	h.writeJSON(w, DatabaseStatsResponse{
		SizeBytes:     stats.SizeBytes,
		WALSizeBytes:  stats.WALSizeBytes,
		PageCount:     stats.PageCount,
		PageSize:      stats.PageSize,
		FreelistCount: stats.FreelistCount,
	})
}

// HandleDiskUsage handles GET /api/system/disk
func (h *SystemHandlers) HandleDiskUsage(w http.ResponseWriter, r *http.Request) {
	dbSize := 0.0
	if stats, err := h.db.GetStats(); err == nil {
		dbSize = float64(stats.SizeBytes+stats.WALSizeBytes) / 1024 / 1024
	}

	h.writeJSON(w, DiskUsageResponse{
		DataDirMB:  h.getDirSize(h.dataDir),
		BackupsMB:  h.getDirSize(filepath.Join(h.dataDir, "backups")),
		DatabaseMB: dbSize,
	})
}

// getSystemStats samples CPU and RAM usage percentages.
// The 100ms CPU window keeps the status endpoint fast.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

// getDirSize calculates total size of a directory in MB
func (h *SystemHandlers) getDirSize(dirPath string) float64 {
	var totalSize int64

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			totalSize += info.Size()
		}
		return nil
	})
	if err != nil {
		h.log.Warn().Err(err).Str("dir", dirPath).Msg("Failed to calculate directory size")
		return 0
	}

	return float64(totalSize) / 1024 / 1024
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
