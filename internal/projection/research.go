package projection

import (
	"jobtailor/internal/model"
)

// CategoryStatus is the derived state of one research category.
type CategoryStatus string

const (
	CategoryPending   CategoryStatus = "pending"
	CategoryStarted   CategoryStatus = "started"
	CategorySucceeded CategoryStatus = "succeeded"
	CategoryFailed    CategoryStatus = "failed"
)

// CategoryStatuses initializes every category named in the research plan to
// pending, then folds the research.category events over it in arrival order.
func CategoryStatuses(s *model.JobApplicationSnapshot) map[string]CategoryStatus {
	statuses := make(map[string]CategoryStatus)
	if s == nil {
		return statuses
	}
	if profile := s.CompanyProfile; profile != nil && profile.ResearchPlan != nil {
		for _, cat := range profile.ResearchPlan.ResearchCategories {
			statuses[cat.CategoryName] = CategoryPending
		}
	}
	for i := range s.Events {
		applyCategoryEvent(statuses, &s.Events[i])
	}
	return statuses
}

// applyCategoryEvent is last-write-wins with no monotonic enforcement: a
// duplicate or out-of-order started event after a succeeded one moves the
// category back to started. The backend's ordering guarantees are not pinned
// down, so the fold tolerates any order. If that ever changes, this is the
// single place to swap in a pending→started→{succeeded|failed} state machine.
func applyCategoryEvent(statuses map[string]CategoryStatus, e *model.ApplicationEvent) {
	if e.EventName != model.EventResearchCategory || e.CategoryName == "" {
		return
	}
	switch e.Status {
	case model.StatusStarted:
		statuses[e.CategoryName] = CategoryStarted
	case model.StatusSucceeded:
		statuses[e.CategoryName] = CategorySucceeded
	case model.StatusFailed:
		statuses[e.CategoryName] = CategoryFailed
	}
}

// ResearchSummary aggregates the research phase for display: category counts,
// completion percentage against the plan, and the overall research status
// taken from the most recent research pipeline.step event.
type ResearchSummary struct {
	Total       int
	Pending     int
	InProgress  int
	Completed   int
	Failed      int
	ProgressPct int
	Overall     model.EventStatus
}

func SummarizeResearch(s *model.JobApplicationSnapshot) ResearchSummary {
	summary := ResearchSummary{Overall: "pending"}
	if s == nil {
		return summary
	}
	if profile := s.CompanyProfile; profile != nil && profile.ResearchPlan != nil {
		summary.Total = len(profile.ResearchPlan.ResearchCategories)
	}
	for _, status := range CategoryStatuses(s) {
		switch status {
		case CategoryPending:
			summary.Pending++
		case CategoryStarted:
			summary.InProgress++
		case CategorySucceeded:
			summary.Completed++
		case CategoryFailed:
			summary.Failed++
		}
	}
	if summary.Total > 0 {
		summary.ProgressPct = summary.Completed * 100 / summary.Total
	}
	for i := len(s.Events) - 1; i >= 0; i-- {
		e := &s.Events[i]
		if e.EventName == model.EventPipelineStep && e.Step == model.StepResearch && e.Status != "" {
			summary.Overall = e.Status
			break
		}
	}
	return summary
}
