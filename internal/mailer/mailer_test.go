package mailer

import (
	"strings"
	"testing"
)

// Every embedded template must parse and render with its data struct,
// otherwise mail jobs fail at send time instead of at build time.
func TestRenderTemplates(t *testing.T) {
	invitation := SignatureRequestInvitationData{
		SignerName:   "Alice",
		OwnerName:    "Bob",
		DocumentName: "Lease",
		SignURL:      "http://localhost:3000/sign/doc-1/token-1",
	}

	tests := []struct {
		name         string
		templateFile MailTemplateFile
		data         any
		wantInBody   string
	}{
		{"invitation", TemplateSignatureRequestInvitation, invitation, "http://localhost:3000/sign/doc-1/token-1"},
		{"reminder", TemplateSignatureRequestReminder, invitation, "still waiting"},
		{"completed", TemplateDocumentCompleted, DocumentCompletedData{RecipientName: "Bob", DocumentName: "Lease"}, "fully executed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body, err := renderTemplate(tt.templateFile, tt.data)
			if err != nil {
				t.Fatalf("renderTemplate() error = %v", err)
			}
			if strings.TrimSpace(subject) == "" {
				t.Error("renderTemplate() produced an empty subject")
			}
			if !strings.Contains(body, tt.wantInBody) {
				t.Errorf("renderTemplate() body does not contain %q", tt.wantInBody)
			}
		})
	}
}
