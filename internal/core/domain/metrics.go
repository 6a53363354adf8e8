package domain

import "math"

// Overview is the dashboard summary across every project.
type Overview struct {
	TotalProjects             int      `json:"total_projects"`
	TotalTasks                int      `json:"total_tasks"`
	CompletedTasks            int      `json:"completed_tasks"`
	TotalUsers                int      `json:"total_users"`
	AverageCompletionTimeDays *float64 `json:"average_completion_time_days"`
}

// ProjectMetrics summarises the tasks of a single project.
type ProjectMetrics struct {
	TotalTasks                int      `json:"total_tasks"`
	CompletedTasks            int      `json:"completed_tasks"`
	InProgressTasks           int      `json:"in_progress_tasks"`
	InReviewTasks             int      `json:"in_review_tasks"`
	TodoTasks                 int      `json:"todo_tasks"`
	AverageCompletionTimeDays *float64 `json:"average_completion_time_days"`
	CompletionRate            float64  `json:"completion_rate"`
}

// ComputeOverview derives the summary from the live entity set.
func ComputeOverview(projects, users int, tasks []*Task) Overview {
	return Overview{
		TotalProjects:             projects,
		TotalTasks:                len(tasks),
		CompletedTasks:            countStatus(tasks, StatusDone),
		TotalUsers:                users,
		AverageCompletionTimeDays: AverageCompletionDays(tasks),
	}
}

// ComputeProjectMetrics derives per-status counts for one project's tasks.
// CompletionRate is a percentage rounded to two decimals.
func ComputeProjectMetrics(tasks []*Task) ProjectMetrics {
	m := ProjectMetrics{
		TotalTasks:                len(tasks),
		CompletedTasks:            countStatus(tasks, StatusDone),
		InProgressTasks:           countStatus(tasks, StatusInProgress),
		InReviewTasks:             countStatus(tasks, StatusInReview),
		TodoTasks:                 countStatus(tasks, StatusTodo),
		AverageCompletionTimeDays: AverageCompletionDays(tasks),
	}
	if m.TotalTasks > 0 {
		rate := float64(m.CompletedTasks) / float64(m.TotalTasks) * 100
		m.CompletionRate = math.Round(rate*100) / 100
	}
	return m
}

// AverageCompletionDays is the mean of (completed_at - created_at) in days
// over tasks that have a completion timestamp. It is nil, not zero, when no
// task qualifies.
func AverageCompletionDays(tasks []*Task) *float64 {
	var sum float64
	var n int
	for _, t := range tasks {
		if d, ok := t.CompletionDays(); ok {
			sum += d
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

func countStatus(tasks []*Task, s TaskStatus) int {
	n := 0
	for _, t := range tasks {
		if t.Status == s {
			n++
		}
	}
	return n
}
