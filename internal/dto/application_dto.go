package dto

import "jobtailor/internal/model"

type StartGenerationRequest struct {
	JobRole        string `json:"job_role"`
	JobDescription string `json:"job_description"`
	Company        string `json:"company"`
}

type UpdateGeneratedResumeRequest struct {
	Resume model.Resume `json:"resume"`
}

type UpdateGeneratedCoverLetterRequest struct {
	CoverLetterContent string `json:"cover_letter_content"`
}

type SaveResumeRequest struct {
	Resume model.Resume `json:"resume"`
}

type StatsResponse struct {
	TotalCreated     int `json:"total_created"`
	CreatedThisMonth int `json:"created_this_month"`
	Completed        int `json:"completed"`
}
