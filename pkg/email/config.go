package email

// Config holds email service configuration.
// Postmark tokens are optional so development can write mail to disk instead.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN,unset"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN,unset"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
}

// HasPostmark reports whether both Postmark tokens are configured.
func (c Config) HasPostmark() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
