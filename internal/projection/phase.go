// Package projection derives UI-facing status from the raw event log and the
// coarse generation status. Everything here is a pure function of the latest
// snapshot, except the Tracker, which keeps the previous phase list so it can
// detect transitions.
package projection

import (
	"strings"

	"jobtailor/internal/model"
)

type PhaseID string

const (
	PhaseCompanyResearch  PhaseID = "company-research"
	PhaseResumeGeneration PhaseID = "resume-generation"
	PhaseCoverLetter      PhaseID = "cover-letter"
)

// PhaseOrder is the fixed presentation order of the pipeline phases.
var PhaseOrder = []PhaseID{PhaseCompanyResearch, PhaseResumeGeneration, PhaseCoverLetter}

type PhaseStatus string

const (
	PhasePending   PhaseStatus = "pending"
	PhaseActive    PhaseStatus = "active"
	PhaseCompleted PhaseStatus = "completed"
	PhaseFailed    PhaseStatus = "failed"
)

type Phase struct {
	ID     PhaseID
	Name   string
	Status PhaseStatus
}

type phaseSpec struct {
	id         PhaseID
	name       string
	processing model.ResumeGenerationStatus
	// stepMarkers are matched as substrings against event steps when looking
	// for failures attributable to this phase.
	stepMarkers []string
	hasArtifact func(*model.JobApplicationSnapshot) bool
}

var phaseSpecs = []phaseSpec{
	{
		id:          PhaseCompanyResearch,
		name:        "Company Research",
		processing:  model.GenerationProcessingCompanyProfile,
		stepMarkers: []string{model.StepCompanyDiscovery, model.StepResearch},
		hasArtifact: hasResearchArtifact,
	},
	{
		id:          PhaseResumeGeneration,
		name:        "Resume Generation",
		processing:  model.GenerationProcessingResume,
		stepMarkers: []string{"resume"},
		hasArtifact: func(s *model.JobApplicationSnapshot) bool { return s.GeneratedResume != nil },
	},
	{
		id:          PhaseCoverLetter,
		name:        "Cover Letter Generation",
		processing:  model.GenerationProcessingCoverLetter,
		stepMarkers: []string{model.StepCoverLetter},
		hasArtifact: func(s *model.JobApplicationSnapshot) bool { return s.GeneratedCoverLetter != "" },
	},
}

// hasResearchArtifact reports whether company research produced its terminal
// output: a plan whose every category has a research result.
func hasResearchArtifact(s *model.JobApplicationSnapshot) bool {
	profile := s.CompanyProfile
	if profile == nil || profile.ResearchPlan == nil {
		return false
	}
	categories := profile.ResearchPlan.ResearchCategories
	if len(categories) == 0 {
		return false
	}
	for _, cat := range categories {
		if profile.ResearchResults[cat.CategoryName] == "" {
			return false
		}
	}
	return true
}

// CurrentPhase maps the coarse generation status to the phase it corresponds
// to. This is the authoritative signal; it never looks at individual events.
func CurrentPhase(s *model.JobApplicationSnapshot) string {
	if s == nil {
		return "starting"
	}
	switch s.ResumeGenerationStatus {
	case model.GenerationProcessingCompanyProfile:
		return string(PhaseCompanyResearch)
	case model.GenerationProcessingResume:
		return string(PhaseResumeGeneration)
	case model.GenerationProcessingCoverLetter:
		return string(PhaseCoverLetter)
	case model.GenerationCompleted:
		return "completed"
	case model.GenerationFailed:
		return "failed"
	default:
		return "starting"
	}
}

// Phases computes the per-phase status list in presentation order.
//
// A phase that has ever seen a failed event for one of its steps stays failed
// for the rest of the rendering session, even if later events succeed. This
// "first failure sticks" policy is deliberate.
func Phases(s *model.JobApplicationSnapshot) []Phase {
	if s == nil {
		return nil
	}
	phases := make([]Phase, 0, len(phaseSpecs))
	for _, spec := range phaseSpecs {
		phases = append(phases, Phase{
			ID:     spec.id,
			Name:   spec.name,
			Status: phaseStatus(s, spec),
		})
	}
	return phases
}

func phaseStatus(s *model.JobApplicationSnapshot, spec phaseSpec) PhaseStatus {
	if hasFailedStep(s.Events, spec.stepMarkers) {
		return PhaseFailed
	}
	if s.ResumeGenerationStatus == spec.processing {
		return PhaseActive
	}
	if spec.hasArtifact(s) || s.ResumeGenerationStatus.After(spec.processing) {
		return PhaseCompleted
	}
	return PhasePending
}

func hasFailedStep(events []model.ApplicationEvent, markers []string) bool {
	for _, e := range events {
		if e.Status != model.StatusFailed || e.Step == "" {
			continue
		}
		for _, marker := range markers {
			if strings.Contains(e.Step, marker) {
				return true
			}
		}
	}
	return false
}
