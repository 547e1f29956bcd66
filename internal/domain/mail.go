package domain

const MailTypeWelcomeEmployee = "welcome_employee"

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	HireDate   string `json:"hireDate"`
}
