package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is recommended as fallback.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeJob builds the signup welcome email for a freshly registered user.
func WelcomeJob(to, firstname string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to SentiLog",
		Text: "Hi " + firstname + ",\n\n" +
			"Your SentiLog account is ready. Log in any time to keep your journal and catch up on news.\n\n" +
			"— The SentiLog team",
	}
}
