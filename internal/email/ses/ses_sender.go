package ses

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"path"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"finvoice/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) Send(ctx context.Context, msg port.DeliverableEmail) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	// Attachments require raw MIME; SES simple content has no attachment
	// support.
	if len(msg.Attachment) > 0 {
		raw := buildRawMessage(from, msg)
		_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
			Content: &types.EmailContent{
				Raw: &types.RawMessage{Data: raw},
			},
		})
		if err != nil {
			return fmt.Errorf("SES SendEmail raw: %w", err)
		}
		return nil
	}

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &msg.Subject},
				Body: &types.Body{
					Text: &types.Content{Data: &msg.Body},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildRawMessage(from string, msg port.DeliverableEmail) []byte {
	boundary := "finvoice-mime-boundary"
	filename := path.Base(msg.AttachmentKey)
	if filename == "." || filename == "/" || filename == "" {
		filename = "invoice.pdf"
	}
	contentType := msg.MimeType
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", msg.Body)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: %s\r\n", contentType)
	fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n", filename)
	fmt.Fprintf(&buf, "Content-Transfer-Encoding: base64\r\n\r\n")

	encoded := base64.StdEncoding.EncodeToString(msg.Attachment)
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	fmt.Fprintf(&buf, "\r\n--%s--\r\n", boundary)

	return buf.Bytes()
}
