package models

// MailConfig is the notification sender configuration kept in the state
// store. Actual delivery happens in the external automation; this service
// only stores and validates it.
type MailConfig struct {
	From     string `json:"from"`
	Password string `json:"password"`
	To       string `json:"to"`
}

// Redacted returns a copy safe to return over the API.
func (m MailConfig) Redacted() MailConfig {
	if m.Password != "" {
		m.Password = "********"
	}
	return m
}
