// Package job contains scheduled maintenance jobs run by the web server's
// cron scheduler.
package job

import (
	"github.com/kruzhok/knowledge-hub/database"
	"github.com/kruzhok/knowledge-hub/logger"
)

// CheckpointJob flushes the sqlite WAL into the main database file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return &CheckpointJob{}
}

func (j *CheckpointJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("wal checkpoint failed:", err)
	}
}
