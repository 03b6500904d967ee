package connectors

import "factorlink/internal"

// MailConnector fetches raw factoring mail from one provider mailbox.
type MailConnector interface {
	FetchInbox(label string, max int) ([]internal.FetchedMailMessage, error)
}
