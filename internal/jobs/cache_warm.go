package jobs

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/scriptura/studyref/internal/cache"
	"github.com/scriptura/studyref/internal/store"
)

// CacheWarmTask refreshes the per-owner study and tag lists in the lookup
// cache so reference cards render from warm data.
type CacheWarmTask struct {
	store store.Store
	cache cache.StudyCache
	cron  string
}

func NewCacheWarmTask(schedule string, store store.Store, cache cache.StudyCache) *CacheWarmTask {
	return &CacheWarmTask{
		store: store,
		cache: cache,
		cron:  schedule,
	}
}

func (c *CacheWarmTask) Schedule() string {
	return c.cron
}

func (c *CacheWarmTask) Run() {
	ctx := context.Background()

	owners, err := c.store.ListOwners(ctx)
	if err != nil {
		logrus.Errorf("cache warm failed to list owners: %v", err)
		return
	}

	for _, ownerID := range owners {
		studies, err := c.store.ListStudies(ctx, ownerID)
		if err != nil {
			logrus.Errorf("cache warm failed to list studies for %s: %v", ownerID, err)
			continue
		}
		if err := c.cache.SetStudies(ctx, ownerID, studies); err != nil {
			logrus.Errorf("cache warm failed to store studies for %s: %v", ownerID, err)
			continue
		}

		tags, err := c.store.ListTags(ctx, ownerID)
		if err != nil {
			logrus.Errorf("cache warm failed to list tags for %s: %v", ownerID, err)
			continue
		}
		if err := c.cache.SetTags(ctx, ownerID, tags); err != nil {
			logrus.Errorf("cache warm failed to store tags for %s: %v", ownerID, err)
		}
	}
}
