package noop

import (
	"context"
	"log"

	"finvoice/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs outgoing deliverables
// to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) Send(_ context.Context, msg port.DeliverableEmail) error {
	log.Printf("[NOOP EMAIL] To %s: %q (attachment %s, %d bytes)",
		msg.To, msg.Subject, msg.AttachmentKey, len(msg.Attachment))
	return nil
}
