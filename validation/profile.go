package validation

type ProfileInput struct {
	Handle         string `json:"handle"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"` // comma separated
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	YouTube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func Profile(in ProfileInput) (Errors, bool) {
	errs := Errors{}

	if !lengthBetween(in.Handle, 2, 40) {
		errs["handle"] = "Handle needs to be between 2 and 40 characters"
	}
	if in.Handle == "" {
		errs["handle"] = "Profile handle is required"
	}

	if in.Status == "" {
		errs["status"] = "Status field is required"
	}

	if in.Skills == "" {
		errs["skills"] = "Skills field is required"
	}

	// Optional URL fields only need to parse when present.
	urls := map[string]string{
		"website":   in.Website,
		"youtube":   in.YouTube,
		"twitter":   in.Twitter,
		"facebook":  in.Facebook,
		"linkedin":  in.LinkedIn,
		"instagram": in.Instagram,
	}
	for field, value := range urls {
		if value != "" && !isURL(value) {
			errs[field] = "Not a valid URL"
		}
	}

	return errs, len(errs) == 0
}

func Experience(in ExperienceInput) (Errors, bool) {
	errs := Errors{}

	if in.Title == "" {
		errs["title"] = "Job title is required"
	}
	if in.Company == "" {
		errs["company"] = "Company is required"
	}
	if in.From == "" {
		errs["from"] = "From date is required"
	}

	return errs, len(errs) == 0
}

func Education(in EducationInput) (Errors, bool) {
	errs := Errors{}

	if in.School == "" {
		errs["school"] = "School is required"
	}
	if in.Degree == "" {
		errs["degree"] = "Degree is required"
	}
	if in.FieldOfStudy == "" {
		errs["fieldofstudy"] = "Field of study is required"
	}
	if in.From == "" {
		errs["from"] = "From date is required"
	}

	return errs, len(errs) == 0
}
