package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/examprep/internal/filestore"
)

const defaultStagingMaxAge = time.Hour

// StagingSweepJob removes staged images an interrupted export left behind.
type StagingSweepJob struct {
	store  filestore.Store
	maxAge time.Duration
	now    func() time.Time
}

func NewStagingSweepJob(store filestore.Store, maxAge time.Duration) *StagingSweepJob {
	return &StagingSweepJob{store: store, maxAge: maxAge, now: time.Now}
}

func (j *StagingSweepJob) Name() string {
	return "staging_sweep"
}

func (j *StagingSweepJob) Run(ctx context.Context) error {
	if j.store == nil {
		return nil
	}
	maxAge := j.maxAge
	if maxAge <= 0 {
		maxAge = defaultStagingMaxAge
	}
	removed, err := j.store.Sweep(ctx, j.now().Add(-maxAge))
	if err != nil {
		return err
	}
	if removed > 0 {
		logutil.GetLogger(ctx).Info("staged files swept", zap.String("store", j.store.Type()), zap.Int("removed", removed))
	}
	return nil
}
