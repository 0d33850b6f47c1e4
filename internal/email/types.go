package email

// Email is a single outgoing message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is shared by every template.
type TemplateData struct {
	UserName     string
	Subject      string
	Message      string
	ActionURL    string
	ActionText   string
	SupportEmail string
	CompanyName  string
}

// VerificationData fills the signup confirmation email.
type VerificationData struct {
	TemplateData
	Role string
}
