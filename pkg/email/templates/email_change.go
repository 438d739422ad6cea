package templates

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// EmailChangeData is the input of the email change confirmation message.
type EmailChangeData struct {
	AppName     string
	NewEmail    string
	ConfirmURL  string
	ValidFor    time.Duration
	SupportLink string // optional mailto: or https: link
}

// EmailChangeSubject returns the subject line for the confirmation message.
func EmailChangeSubject(appName string) string {
	if appName == "" {
		return "Confirm your new email address"
	}
	return "Confirm your new email address for " + appName
}

// EmailChange renders the confirmation message sent to the current address.
// All user-controlled values are escaped; the URL goes through templ's URL
// sanitiser so only http(s) links survive.
func EmailChange(data EmailChangeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		href := string(templ.URL(data.ConfirmURL))

		parts := []string{
			`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`,
			templ.EscapeString(EmailChangeSubject(data.AppName)),
			`</title></head><body style="font-family:sans-serif;line-height:1.5">`,
			`<p>We received a request to change the email address on your `,
			templ.EscapeString(appNameOrDefault(data.AppName)),
			` account to <strong>`,
			templ.EscapeString(data.NewEmail),
			`</strong>.</p>`,
			`<p><a href="`, templ.EscapeString(href), `">Confirm email change</a></p>`,
			`<p>This link expires in `,
			templ.EscapeString(humanDuration(data.ValidFor)),
			` and can be used once. If you did not request this change, ignore this message and your address stays the same.</p>`,
		}
		if data.SupportLink != "" {
			parts = append(parts,
				`<p>Questions? <a href="`,
				templ.EscapeString(string(templ.URL(data.SupportLink))),
				`">Contact support</a>.</p>`,
			)
		}
		parts = append(parts, `</body></html>`)

		for _, p := range parts {
			if _, err := io.WriteString(w, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func appNameOrDefault(name string) string {
	if name == "" {
		return "your"
	}
	return name
}

func humanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "a short time"
	case d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return d.Round(time.Second).String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
