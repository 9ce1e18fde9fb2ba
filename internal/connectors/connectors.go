package connectors

import "pumpquote/internal"

// MailConnector fetches recent messages from a mailbox. Implementations exist
// for IMAP and the Gmail API.
type MailConnector interface {
	FetchInbox(label string, max int) ([]internal.FetchedMailMessage, error)
}
