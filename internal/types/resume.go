// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalInfo holds the contact block and summary of a resume
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
	Summary  string `json:"summary"`
}

// Experience represents a single work history entry.
// Dates are free text and never parsed.
type Experience struct {
	ID               string   `json:"id"`
	JobTitle         string   `json:"jobTitle"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Responsibilities []string `json:"responsibilities"`
}

// Education represents a single education entry
type Education struct {
	ID             string `json:"id"`
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduationDate"`
}

// Layout holds the two layout toggles every template interprets
type Layout struct {
	Sidebar   bool `json:"sidebar"`
	TwoColumn bool `json:"twoColumn"`
}

// Customization holds presentational options consumed only by the renderer
type Customization struct {
	NameFontFamily    string `json:"nameFontFamily"`
	NameFontSize      string `json:"nameFontSize"`
	Layout            Layout `json:"layout"`
	HighlightSections bool   `json:"highlightSections"`
}

// ResumeData is the aggregate root: the single unit of persistence and the
// single value passed between editor and renderer.
type ResumeData struct {
	PersonalInfo  PersonalInfo  `json:"personalInfo"`
	Experience    []Experience  `json:"experience"`
	Education     []Education   `json:"education"`
	Skills        []string      `json:"skills"`
	Customization Customization `json:"customization"`
}

// Clone returns a deep copy. Slices are never shared with the receiver.
func (r ResumeData) Clone() ResumeData {
	out := r
	if r.Experience != nil {
		out.Experience = make([]Experience, len(r.Experience))
		for i, exp := range r.Experience {
			out.Experience[i] = exp.Clone()
		}
	}
	if r.Education != nil {
		out.Education = make([]Education, len(r.Education))
		copy(out.Education, r.Education)
	}
	out.Skills = cloneStrings(r.Skills)
	return out
}

// Clone returns a copy of the entry with its own responsibilities slice
func (e Experience) Clone() Experience {
	e.Responsibilities = cloneStrings(e.Responsibilities)
	return e
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// DefaultResumeData returns the seed record used on first use and as the
// backfill source when loading older saved records.
func DefaultResumeData() ResumeData {
	return ResumeData{
		PersonalInfo: PersonalInfo{
			Name:     "Jane Doe",
			Email:    "jane.doe@example.com",
			Phone:    "(123) 456-7890",
			LinkedIn: "linkedin.com/in/janedoe",
			Website:  "janedoe.dev",
			Summary:  "Seasoned software engineer with over 8 years of experience in building and scaling web applications. Proficient in React, Node.js, and cloud-native technologies. Passionate about creating elegant and user-friendly solutions.",
		},
		Experience: []Experience{
			{
				ID:        "exp1",
				JobTitle:  "Senior Software Engineer",
				Company:   "Tech Solutions Inc.",
				Location:  "San Francisco, CA",
				StartDate: "Jan 2020",
				EndDate:   "Present",
				Responsibilities: []string{
					"Led the development of a new microservices-based architecture, improving system scalability by 50%.",
					"Mentored junior engineers, fostering a culture of growth and knowledge sharing.",
					"Collaborated with product managers to define and implement new features.",
				},
			},
			{
				ID:        "exp2",
				JobTitle:  "Software Engineer",
				Company:   "Innovate LLC",
				Location:  "Austin, TX",
				StartDate: "Jun 2017",
				EndDate:   "Dec 2019",
				Responsibilities: []string{
					"Developed and maintained the company's flagship React-based web application.",
					"Wrote unit and integration tests, increasing code coverage from 60% to 90%.",
					"Participated in agile ceremonies and contributed to sprint planning.",
				},
			},
		},
		Education: []Education{
			{
				ID:             "edu1",
				Degree:         "B.S. in Computer Science",
				Institution:    "University of Technology",
				Location:       "Techville, USA",
				GraduationDate: "May 2017",
			},
		},
		Skills: []string{"React", "Node.js", "TypeScript", "AWS", "Docker", "Kubernetes", "Project Management"},
		Customization: Customization{
			NameFontFamily: FontSpaceGrotesk,
			NameFontSize:   FontSizeXLarge,
			Layout: Layout{
				Sidebar:   false,
				TwoColumn: false,
			},
			HighlightSections: false,
		},
	}
}
