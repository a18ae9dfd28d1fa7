package model

import (
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"
)

type EventName string

const (
	EventPipelineUpdate    EventName = "pipeline.update"
	EventPipelineStep      EventName = "pipeline.step"
	EventResearchCategory  EventName = "research.category"
	EventToolExecution     EventName = "tool.execution"
	EventArtifactGenerated EventName = "artifact.generated"
	EventPipelineCompleted EventName = "pipeline.completed"
	EventPipelineFailed    EventName = "pipeline.failed"
)

type EventStatus string

const (
	StatusStarted   EventStatus = "started"
	StatusSucceeded EventStatus = "succeeded"
	StatusFailed    EventStatus = "failed"
)

// Pipeline step identifiers the backend is known to emit. The field itself is
// free-form on the wire, so consumers must tolerate values outside this set.
const (
	StepCompanyDiscovery      = "company_discovery"
	StepResearch              = "research"
	StepResumeGeneration      = "resume_generation"
	StepResumeDraft           = "resume_draft"
	StepResumeDrafting        = "resume_drafting"
	StepResumeEvaluation      = "resume_evaluation"
	StepCoverLetter           = "cover_letter"
	StepCoverLetterGeneration = "cover_letter_generation"
	StepCoverLetterDrafting   = "cover_letter_drafting"
	StepCoverLetterEvaluation = "cover_letter_evaluation"
)

// ApplicationEvent is one immutable fact emitted by the backend pipeline.
// Events are append-only within a snapshot: the slice order is the arrival
// order and must be treated as the primary order. CreatedAt is a secondary
// signal for "latest" computations only.
type ApplicationEvent struct {
	ID               string          `json:"id"`
	JobApplicationID string          `json:"job_application_id"`
	EventName        EventName       `json:"event_name"`
	Status           EventStatus     `json:"status,omitempty"`
	Step             string          `json:"step,omitempty"`
	CategoryName     string          `json:"category_name,omitempty"`
	ToolName         string          `json:"tool_name,omitempty"`
	Iteration        int             `json:"iteration,omitempty"`
	Message          string          `json:"message,omitempty"`
	Data             json.RawMessage `json:"data,omitempty"`
	Error            json.RawMessage `json:"error,omitempty"`
	CreatedAt        string          `json:"created_at,omitempty"`
}

// Timestamp parses CreatedAt. Missing or unparseable timestamps come back as
// the zero time so that they sort as minimal.
func (e *ApplicationEvent) Timestamp() time.Time {
	if e.CreatedAt == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, e.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ArgsSummary extracts the tool-call argument summary from the loose data
// payload. The backend sends either a plain string or a small object; for
// objects the query or url field is preferred, otherwise the raw JSON.
func (e *ApplicationEvent) ArgsSummary() string {
	if len(e.Data) == 0 {
		return ""
	}
	summary := gjson.GetBytes(e.Data, "args_summary")
	if !summary.Exists() {
		return ""
	}
	if summary.Type == gjson.String {
		return summary.String()
	}
	if query := summary.Get("query"); query.Exists() {
		return query.String()
	}
	if url := summary.Get("url"); url.Exists() {
		return url.String()
	}
	return summary.Raw
}

// EvaluationGrade reads the grade attached to resume/cover-letter evaluation
// step events, empty when absent.
func (e *ApplicationEvent) EvaluationGrade() string {
	return gjson.GetBytes(e.Data, "evaluation_grade").String()
}

func (e *ApplicationEvent) EvaluationSummary() string {
	return gjson.GetBytes(e.Data, "evaluation_summary").String()
}

// ErrorMessage pulls a human-readable message out of the free-form error bag.
func (e *ApplicationEvent) ErrorMessage() string {
	if msg := e.Message; msg != "" {
		return msg
	}
	if len(e.Error) == 0 {
		return ""
	}
	if msg := gjson.GetBytes(e.Error, "message"); msg.Exists() {
		return msg.String()
	}
	return string(e.Error)
}
