package domain

import (
	"testing"
	"time"
)

func taskWith(status TaskStatus, created time.Time, completedAfter time.Duration) *Task {
	t := &Task{Status: status, CreatedAt: created}
	if status == StatusDone {
		at := created.Add(completedAfter)
		t.CompletedAt = &at
	}
	return t
}

func TestComputeOverview_NoCompletionsIsNil(t *testing.T) {
	tasks := []*Task{
		taskWith(StatusTodo, t0, 0),
		taskWith(StatusInProgress, t0, 0),
	}
	o := ComputeOverview(3, 2, tasks)

	if o.AverageCompletionTimeDays != nil {
		t.Fatalf("expected nil average, got %v", *o.AverageCompletionTimeDays)
	}
	if o.TotalProjects != 3 || o.TotalUsers != 2 || o.TotalTasks != 2 || o.CompletedTasks != 0 {
		t.Fatalf("unexpected overview: %+v", o)
	}
}

func TestComputeOverview_ExactMean(t *testing.T) {
	tasks := []*Task{
		taskWith(StatusDone, t0, 24*time.Hour),
		taskWith(StatusDone, t0, 72*time.Hour),
		taskWith(StatusDone, t0, 6*time.Hour),
		taskWith(StatusInReview, t0, 0),
	}
	o := ComputeOverview(1, 1, tasks)

	if o.CompletedTasks != 3 {
		t.Fatalf("expected 3 completed, got %d", o.CompletedTasks)
	}
	want := (1.0 + 3.0 + 0.25) / 3
	if o.AverageCompletionTimeDays == nil || *o.AverageCompletionTimeDays != want {
		t.Fatalf("expected %v, got %v", want, o.AverageCompletionTimeDays)
	}
}

func TestComputeOverview_InstantCompletionIsZeroNotNil(t *testing.T) {
	o := ComputeOverview(1, 1, []*Task{taskWith(StatusDone, t0, 0)})
	if o.AverageCompletionTimeDays == nil {
		t.Fatalf("an instant completion must report 0, not nil")
	}
	if *o.AverageCompletionTimeDays != 0 {
		t.Fatalf("expected 0, got %v", *o.AverageCompletionTimeDays)
	}
}

func TestComputeProjectMetrics(t *testing.T) {
	tasks := []*Task{
		taskWith(StatusDone, t0, 48*time.Hour),
		taskWith(StatusTodo, t0, 0),
		taskWith(StatusInProgress, t0, 0),
	}
	m := ComputeProjectMetrics(tasks)

	if m.TotalTasks != 3 || m.CompletedTasks != 1 || m.TodoTasks != 1 || m.InProgressTasks != 1 || m.InReviewTasks != 0 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	if m.CompletionRate != 33.33 {
		t.Errorf("expected completion rate 33.33, got %v", m.CompletionRate)
	}
	if m.AverageCompletionTimeDays == nil || *m.AverageCompletionTimeDays != 2 {
		t.Errorf("expected average 2 days, got %v", m.AverageCompletionTimeDays)
	}
}

func TestComputeProjectMetrics_Empty(t *testing.T) {
	m := ComputeProjectMetrics(nil)
	if m.CompletionRate != 0 || m.AverageCompletionTimeDays != nil {
		t.Fatalf("empty project should report zero rate and nil average: %+v", m)
	}
}
