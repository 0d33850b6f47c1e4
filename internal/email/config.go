package email

import "fmt"

// Config holds SMTP settings and the link target of confirmation emails.
type Config struct {
	SMTPHost      string
	SMTPPort      int
	Username      string
	Password      string
	FromEmail     string
	FromName      string
	CompanyName   string
	VerifyBaseURL string
}

func DefaultConfig() Config {
	return Config{
		SMTPHost:      "",
		SMTPPort:      587,
		FromEmail:     "noreply@creatorhub.local",
		FromName:      "CreatorHub",
		CompanyName:   "CreatorHub",
		VerifyBaseURL: "http://localhost:4000",
	}
}

func (c Config) Validate() error {
	if c.SMTPHost == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.SMTPPort)
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}
