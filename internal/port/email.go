package port

import "context"

// DeliverableEmail is a rendered invoice attached to an outgoing message.
type DeliverableEmail struct {
	To            string
	Subject       string
	Body          string
	AttachmentKey string
	Attachment    []byte
	MimeType      string
}

// EmailSender abstracts deliverable mailing (SES in production, noop in
// development).
type EmailSender interface {
	Send(ctx context.Context, msg DeliverableEmail) error
}
