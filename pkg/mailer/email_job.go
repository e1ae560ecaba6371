package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// The worker renders the named template with Data and falls back to Text when
// no template is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}
