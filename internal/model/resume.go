package model

type Link struct {
	URL      string `json:"url"`
	Platform string `json:"platform"`
}

type PersonalInfo struct {
	PhoneNumber       string `json:"phone_number"`
	Address           string `json:"address"`
	Summary           string `json:"summary"`
	ContactLinks      []Link `json:"contact_links,omitempty"`
	Age               int    `json:"age,omitempty"`
	ProfessionalTitle string `json:"professional_title"`
}

type WorkExperience struct {
	CompanyName      string `json:"company_name"`
	Position         string `json:"position"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date,omitempty"`
	Responsibilities string `json:"responsibilities"`
}

type Education struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
	Grade        string `json:"grade,omitempty"`
}

type Skill struct {
	Name             string `json:"name"`
	ProficiencyLevel string `json:"proficiency_level"`
}

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
}

type Certification struct {
	Name      string `json:"name"`
	Issuer    string `json:"issuer"`
	IssueDate string `json:"issue_date"`
}

type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

type Award struct {
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Resume is the structured resume document exchanged with the backend, both
// as the user's base resume and as a generated artifact.
type Resume struct {
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	PersonalInfo   PersonalInfo     `json:"personal_info"`
	WorkExperiences []WorkExperience `json:"work_experiences"`
	Educations     []Education      `json:"educations"`
	Skills         []Skill          `json:"skills"`
	Projects       []Project        `json:"projects"`
	Certifications []Certification  `json:"certifications"`
	Hobbies        []string         `json:"hobbies,omitempty"`
	Languages      []Language       `json:"languages,omitempty"`
	Awards         []Award          `json:"awards,omitempty"`
}
