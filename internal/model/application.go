package model

// ResumeGenerationStatus is the coarse machine state of one job application.
type ResumeGenerationStatus string

const (
	GenerationStarted                  ResumeGenerationStatus = "started"
	GenerationProcessingCompanyProfile ResumeGenerationStatus = "processing_company_profile"
	GenerationProcessingResume         ResumeGenerationStatus = "processing_resume_generation"
	GenerationProcessingCoverLetter    ResumeGenerationStatus = "processing_cover_letter"
	GenerationCompleted                ResumeGenerationStatus = "completed"
	GenerationFailed                   ResumeGenerationStatus = "failed"
)

var generationOrder = map[ResumeGenerationStatus]int{
	GenerationStarted:                  0,
	GenerationProcessingCompanyProfile: 1,
	GenerationProcessingResume:         2,
	GenerationProcessingCoverLetter:    3,
	GenerationCompleted:                4,
}

// After reports whether s has moved past other in the pipeline order.
// A failed status is never "past" anything.
func (s ResumeGenerationStatus) After(other ResumeGenerationStatus) bool {
	a, ok := generationOrder[s]
	if !ok {
		return false
	}
	b, ok := generationOrder[other]
	if !ok {
		return false
	}
	return a > b
}

type ResearchCategory struct {
	CategoryName string   `json:"category_name"`
	Description  string   `json:"description"`
	Priority     int      `json:"priority"`
	DataPoints   []string `json:"data_points"`
}

type ResearchPlan struct {
	TargetRole         string             `json:"target_role"`
	ResearchCategories []ResearchCategory `json:"research_categories"`
	Rationale          string             `json:"rationale"`
}

type KeyProperties struct {
	CareersPage     string `json:"careers_page,omitempty"`
	EngineeringBlog string `json:"engineering_blog,omitempty"`
	AboutPage       string `json:"about_page,omitempty"`
	ContactPage     string `json:"contact_page,omitempty"`
}

type CompanyCharacteristics struct {
	CompanySizeEstimate string `json:"company_size_estimate,omitempty"`
	CompanyType         string `json:"company_type,omitempty"`
}

type DiscoveredCompanyProfile struct {
	CompanyName            string                  `json:"company_name"`
	OfficialWebsite        string                  `json:"official_website,omitempty"`
	DiscoveryConfidence    string                  `json:"discovery_confidence,omitempty"`
	KeyProperties          *KeyProperties          `json:"key_properties,omitempty"`
	CompanyCharacteristics *CompanyCharacteristics `json:"company_characteristics,omitempty"`
	LinkedinCompanyPage    string                  `json:"linkedin_company_page,omitempty"`
	AdditionalVerifiedURLs []string                `json:"additional_verified_urls,omitempty"`
	DiscoveryNotes         string                  `json:"discovery_notes,omitempty"`
	SourcesConsulted       []string                `json:"sources_consulted,omitempty"`
}

// CompanyProfile is populated incrementally as pipeline stages complete.
// ResearchResults is keyed by category name.
type CompanyProfile struct {
	CompanyDiscoveryResults *DiscoveredCompanyProfile `json:"company_discovery_results,omitempty"`
	ResearchPlan            *ResearchPlan             `json:"research_plan,omitempty"`
	ResearchResults         map[string]string         `json:"research_results,omitempty"`
}

// JobApplicationSnapshot is the full current state of one job application as
// delivered by the backend. Each stream message carries the entire snapshot,
// never a delta, so a snapshot is only ever replaced wholesale.
type JobApplicationSnapshot struct {
	ID                     string                 `json:"id"`
	JobTitle               string                 `json:"job_title"`
	CompanyName            string                 `json:"company_name"`
	JobDescription         string                 `json:"job_description"`
	BackgroundTaskID       string                 `json:"background_task_id,omitempty"`
	ResumeGenerationStatus ResumeGenerationStatus `json:"resume_generation_status,omitempty"`
	CompanyProfile         *CompanyProfile        `json:"company_profile,omitempty"`
	GeneratedResume        *Resume                `json:"generated_resume,omitempty"`
	OriginalResumeSnapshot *Resume                `json:"original_resume_snapshot,omitempty"`
	GeneratedCoverLetter   string                 `json:"generated_cover_letter,omitempty"`
	CreatedAt              string                 `json:"created_at,omitempty"`
	UpdatedAt              string                 `json:"updated_at,omitempty"`
	Events                 []ApplicationEvent     `json:"events"`
}

type JobApplicationPreview struct {
	ID                     string                 `json:"id"`
	JobTitle               string                 `json:"job_title"`
	CompanyName            string                 `json:"company_name"`
	ResumeGenerationStatus ResumeGenerationStatus `json:"resume_generation_status,omitempty"`
	CreatedAt              string                 `json:"created_at"`
}

type PaginatedJobApplicationPreviews struct {
	Items   []JobApplicationPreview `json:"items"`
	Total   int                     `json:"total"`
	HasNext bool                    `json:"has_next"`
}
