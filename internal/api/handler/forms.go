package handler

// signupForm is shared by the HTML form and the JSON API.
type signupForm struct {
	Username string `form:"username" json:"username" validate:"max=80"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,maxbytes=72"`
}

type loginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}
