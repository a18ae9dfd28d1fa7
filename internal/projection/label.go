package projection

import (
	"strings"

	"jobtailor/internal/model"
)

// CurrentStepLabel scans the event log from the most recent event backwards
// and returns the first informative label. Events are the fine-grained signal
// but can lag the coarse status, so when nothing matches the label falls back
// to one derived from resume_generation_status alone.
func CurrentStepLabel(s *model.JobApplicationSnapshot) string {
	if s == nil {
		return "Starting…"
	}
	for i := len(s.Events) - 1; i >= 0; i-- {
		e := &s.Events[i]
		if label, ok := eventLabel(e); ok {
			return label
		}
	}
	return statusLabel(s.ResumeGenerationStatus)
}

func eventLabel(e *model.ApplicationEvent) (string, bool) {
	switch e.EventName {
	case model.EventPipelineFailed:
		return "Failed", true

	case model.EventResearchCategory:
		category := strings.ReplaceAll(e.CategoryName, "_", " ")
		switch e.Status {
		case model.StatusSucceeded:
			return "Research: " + category + " done", true
		case model.StatusStarted:
			return "Research: " + category, true
		}

	case model.EventPipelineStep:
		switch e.Step {
		case model.StepCompanyDiscovery:
			if e.Status == model.StatusSucceeded {
				return "Company Discovery Completed", true
			}
			return "Company Discovery", true
		case model.StepResearch:
			if e.Status == model.StatusSucceeded {
				return "Research Completed", true
			}
			return "Research Execution", true
		case model.StepResumeDraft:
			if e.Status == model.StatusSucceeded {
				return "Resume Draft Completed", true
			}
			return "Resume Drafting", true
		case model.StepCoverLetter:
			if e.Status == model.StatusSucceeded {
				return "Cover Letter Completed", true
			}
			return "Cover Letter Drafting", true
		}
	}
	return "", false
}

func statusLabel(status model.ResumeGenerationStatus) string {
	switch status {
	case model.GenerationProcessingCompanyProfile:
		return "Company Discovery"
	case model.GenerationProcessingResume:
		return "Resume Drafting"
	case model.GenerationProcessingCoverLetter:
		return "Cover Letter Drafting"
	case model.GenerationCompleted:
		return "Completed"
	case model.GenerationFailed:
		return "Failed"
	default:
		return "Starting…"
	}
}
