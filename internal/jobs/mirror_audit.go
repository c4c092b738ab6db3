package jobs

import (
	"context"

	goset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/scriptura/studyref/internal/store"
)

// MirrorAuditTask periodically sweeps the links table for internal links
// whose paired row is missing. The transactional write path makes such
// rows impossible under normal operation, so every hit points at manual
// data surgery or a storage-layer fault. The task only reports; repair is
// left to the operator.
type MirrorAuditTask struct {
	store store.Store
	cron  string
}

func NewMirrorAuditTask(schedule string, store store.Store) *MirrorAuditTask {
	return &MirrorAuditTask{
		store: store,
		cron:  schedule,
	}
}

func (m *MirrorAuditTask) Schedule() string {
	return m.cron
}

func (m *MirrorAuditTask) Run() {
	dangling, err := m.store.ListDanglingMirrors(context.Background())
	if err != nil {
		logrus.Errorf("mirror audit failed: %v", err)
		return
	}

	if len(dangling) == 0 {
		return
	}

	ids := goset.NewSet[string]()
	for _, link := range dangling {
		ids.Add(link.ID)
	}

	logrus.Errorf("mirror audit found %d half-orphaned links: %v", ids.Cardinality(), ids.ToSlice())
}
