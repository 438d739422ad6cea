// Package email sends transactional messages through a provider-agnostic
// EmailSender.
//
// Two implementations are provided:
//   - NewPostmarkClient delivers through Postmark. Link tracking is off so
//     signed confirmation links are delivered untouched.
//   - DevSender writes every message to a directory as .html and .json files.
//
// Both validate SendEmailParams before doing any work and wrap delivery
// failures in ErrFailedToSendEmail.
//
// Message bodies are templ components rendered with templates.Render:
//
//	body, err := templates.Render(ctx, templates.EmailChange(templates.EmailChangeData{
//	    AppName:    "Coreflow",
//	    NewEmail:   "new@example.com",
//	    ConfirmURL: link,
//	    ValidFor:   time.Hour,
//	}))
//	if err != nil {
//	    return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "old@example.com",
//	    Subject:  templates.EmailChangeSubject("Coreflow"),
//	    BodyHTML: body,
//	    Tag:      "email-change",
//	})
package email
