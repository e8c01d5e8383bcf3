package validation

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Register(in RegisterInput) (Errors, bool) {
	errs := Errors{}

	if !lengthBetween(in.Name, 2, 30) {
		errs["name"] = "Name must be between 2 and 30 characters"
	}
	if in.Name == "" {
		errs["name"] = "Name field is required"
	}

	if in.Email == "" {
		errs["email"] = "Email field is required"
	} else if !isEmail(in.Email) {
		errs["email"] = "Email is invalid"
	}

	if !lengthBetween(in.Password, 6, 30) {
		errs["password"] = "Password must be between 6 and 30 characters"
	}
	if in.Password == "" {
		errs["password"] = "Password field is required"
	}

	return errs, len(errs) == 0
}

func Login(in LoginInput) (Errors, bool) {
	errs := Errors{}

	if in.Email == "" {
		errs["email"] = "Email field is required"
	} else if !isEmail(in.Email) {
		errs["email"] = "Email is invalid"
	}

	if in.Password == "" {
		errs["password"] = "Password field is required"
	}

	return errs, len(errs) == 0
}
