package model

// CV is the canonical internal shape of a parsed résumé. All accepted input
// forms are converted into this struct at the boundary before the pipeline
// runs; every field is free-form, untrusted text and any section may be
// absent.
type CV struct {
	Experience     []WorkExperience `json:"experience,omitempty"`
	Education      []Education      `json:"education,omitempty"`
	Certifications []Certification  `json:"certifications,omitempty"`
	Achievements   []string         `json:"achievements,omitempty"`
	Skills         []string         `json:"skills,omitempty"`
}

// WorkExperience is one employment entry of a CV
type WorkExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Location     string   `json:"location,omitempty"`
	Logo         string   `json:"logo,omitempty"`
}

// Education is one degree entry of a CV
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field,omitempty"`
	StartDate      string `json:"startDate,omitempty"`
	GraduationDate string `json:"graduationDate,omitempty"`
	Location       string `json:"location,omitempty"`
}

// Certification is one certification entry of a CV
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`
}

// TechnicalSkills normalizes the many skill shapes seen in source CVs
// (plain list, or a map of category to list) into a flat list of technical
// skills. Unknown categories and non-string entries are ignored.
func TechnicalSkills(raw any) []string {
	switch skills := raw.(type) {
	case nil:
		return nil
	case []string:
		return skills
	case []any:
		out := make([]string, 0, len(skills))
		for _, s := range skills {
			if str, ok := s.(string); ok {
				out = append(out, str)
			}
		}
		return out
	case map[string]any:
		categories := []string{"technical", "frontend", "backend", "databases", "cloud", "frameworks", "tools", "expertise"}
		var out []string
		for _, category := range categories {
			out = append(out, TechnicalSkills(skills[category])...)
		}
		return out
	case map[string][]string:
		converted := make(map[string]any, len(skills))
		for k, v := range skills {
			converted[k] = v
		}
		return TechnicalSkills(converted)
	default:
		return nil
	}
}
