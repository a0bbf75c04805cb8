package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/jekabolt/wedding-rsvp/internal/entity"
	gerr "github.com/jekabolt/wedding-rsvp/internal/errors"
	"github.com/jekabolt/wedding-rsvp/internal/view"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type rsvpConfirmationData struct {
	Site      view.Site
	Name      string
	Attending bool
	Guests    int
}

// SendRSVPConfirmation queues a confirmation for a stored submission. It never blocks.
func (m *Mailer) SendRSVPConfirmation(ctx context.Context, rsvp *entity.RSVP) error {
	if rsvp == nil || rsvp.Submission == nil {
		return fmt.Errorf("%w: no submission to confirm", gerr.BadMailRequest)
	}
	sub := rsvp.Submission

	data := rsvpConfirmationData{
		Site:      m.site,
		Name:      sub.Name,
		Attending: sub.Attending,
		Guests:    sub.NumberOfGuests,
	}
	msg, err := m.buildMessage(mail.NewEmail(sub.Name, rsvp.Email), rsvpConfirmation, plainConfirmation(data), data)
	if err != nil {
		return err
	}

	select {
	case m.queue <- &outgoing{msg: msg}:
		return nil
	default:
		return gerr.MailQueueFull
	}
}

func plainConfirmation(d rsvpConfirmationData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", d.Name)
	if d.Attending {
		guests := "guests"
		if d.Guests == 1 {
			guests = "guest"
		}
		fmt.Fprintf(&b, "Thank you for your RSVP. We have you down for %d %s.\n", d.Guests, guests)
	} else {
		b.WriteString("Thank you for letting us know. We're sorry you can't make it.\n")
	}
	b.WriteString("\nYou can change your response any time on the invitation page using this email address.\n")
	return b.String()
}
