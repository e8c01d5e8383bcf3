package validation

type PostInput struct {
	Text string `json:"text"`
}

// Post validates both new posts and new comments; each is just a text body.
func Post(in PostInput) (Errors, bool) {
	errs := Errors{}

	if !lengthBetween(in.Text, 10, 300) {
		errs["text"] = "Post must be between 10 and 300 characters"
	}
	if in.Text == "" {
		errs["text"] = "Text field is required"
	}

	return errs, len(errs) == 0
}
