package forms

type SignUpForm struct {
	Username string `json:"username" validate:"min=3,max=20,username"`
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"min=8,max=50,password"`
}

func (SignUpForm) messages() map[string]string {
	return map[string]string{
		"username":          "Username must be 3 to 20 characters",
		"username.username": "Username may only contain letters, digits, _ and -",
		"email":             "Invalid email address",
		"password":          "Password must be 8 to 50 characters",
		"password.password": "Password needs upper and lower case letters, a digit and a symbol",
	}
}

type SignInForm struct {
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"required"`
}

func (SignInForm) messages() map[string]string {
	return map[string]string{
		"email":    "Invalid email address",
		"password": "Password is required",
	}
}
