package models

// WorkExperience is one employment entry extracted from a resume.
type WorkExperience struct {
	Company     *string `json:"company"`
	Position    *string `json:"position"`
	Duration    *string `json:"duration"`
	Description *string `json:"description"`
}

// Project is one project entry extracted from a resume.
type Project struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Technologies []string `json:"technologies"`
}

// ExtractedInfo is the structured candidate record produced by the AI field
// extraction stage. The key set is fixed: a field the model could not
// determine is null, list fields are empty, never absent.
type ExtractedInfo struct {
	Name           *string          `json:"name"`
	SchoolName     *string          `json:"school_name"`
	SchoolCity     *string          `json:"school_city"`
	EducationLevel *string          `json:"education_level"`
	Major          *string          `json:"major"`
	GraduationYear *string          `json:"graduation_year"`
	Phone          *string          `json:"phone"`
	Email          *string          `json:"email"`
	WorkExperience []WorkExperience `json:"work_experience"`
	Skills         []string         `json:"skills"`
	Projects       []Project        `json:"projects"`
	Summary        *string          `json:"summary"`
}

// DefaultExtractedInfo is the well-known fallback record substituted when
// field extraction fails for any reason.
func DefaultExtractedInfo() *ExtractedInfo {
	return &ExtractedInfo{
		WorkExperience: []WorkExperience{},
		Skills:         []string{},
		Projects:       []Project{},
	}
}
