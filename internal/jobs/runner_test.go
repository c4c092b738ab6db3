package jobs

import (
	"testing"
	"time"
)

type tickJob struct {
	ticks chan struct{}
}

func (j *tickJob) Run() {
	select {
	case j.ticks <- struct{}{}:
	default:
	}
}

func (j *tickJob) Schedule() string {
	return "@every 1s"
}

func TestTaskExecutor_RunsScheduledJobs(t *testing.T) {
	job := &tickJob{ticks: make(chan struct{}, 1)}

	executor := NewTaskExecutor([]Job{Noop{}}, []CronJob{Noop{}, job})
	executor.Run()
	defer executor.Stop()

	select {
	case <-job.ticks:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled job never ran")
	}
}
