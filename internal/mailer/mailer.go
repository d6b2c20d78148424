package mailer

import "embed"

const (
	FROM_NAME = "InkSign"
	MAX_RETRY = 3
)

//go:embed "templates"
var FS embed.FS

type MailTemplateFile string

const (
	TemplateSignatureRequestInvitation MailTemplateFile = "templates/signature_request_invitation.tmpl"
	TemplateSignatureRequestReminder   MailTemplateFile = "templates/signature_request_reminder.tmpl"
	TemplateDocumentCompleted          MailTemplateFile = "templates/document_completed.tmpl"
)

type Client interface {
	Send(templateFile MailTemplateFile, toEmail string, data any) (int, error)
}

// SignatureRequestInvitationData is injected into the invitation and
// reminder templates. SignURL is the signer's capability link.
type SignatureRequestInvitationData struct {
	SignerName   string `json:"signerName"`
	OwnerName    string `json:"ownerName"`
	DocumentName string `json:"documentName"`
	SignURL      string `json:"signUrl"`
}

type DocumentCompletedData struct {
	RecipientName string `json:"recipientName"`
	DocumentName  string `json:"documentName"`
}
