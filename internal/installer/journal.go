package installer

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/quickr-dev/labctl/internal/db"
)

const (
	StepDirectory = "directory"
	StepDownload  = "download"
	StepConfig    = "config"
	StepService   = "service"
	StepRegister  = "register"
)

// journal records steps to install.db. It never fails the caller.
type journal struct {
	db    *db.DB
	runID string
	log   *zap.Logger
}

func openJournal(dir, runID string, log *zap.Logger) *journal {
	j := &journal{runID: runID, log: log}

	database, err := db.Open(filepath.Join(dir, db.FileName))
	if err != nil {
		log.Warn("install journal unavailable", zap.Error(err))
		return j
	}
	j.db = database
	return j
}

func (j *journal) record(step, status, detail string) {
	if j == nil || j.db == nil {
		return
	}
	if err := j.db.RecordStep(j.runID, step, status, detail); err != nil {
		j.log.Warn("failed to journal step", zap.String("step", step), zap.Error(err))
	}
}

func (j *journal) close() {
	if j == nil || j.db == nil {
		return
	}
	if err := j.db.Close(); err != nil {
		j.log.Warn("closing install journal", zap.Error(err))
	}
}
