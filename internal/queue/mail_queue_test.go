package queue

import (
	"encoding/json"
	"testing"

	"github.com/rithvisal/inksign/internal/mailer"
)

func TestNewSignatureRequestInvitationMailJob(t *testing.T) {
	data := mailer.SignatureRequestInvitationData{
		SignerName:   "Dara",
		OwnerName:    "Visal",
		DocumentName: "Lease Agreement",
		SignURL:      "http://localhost:3000/sign/doc-1/tok",
	}

	job, err := NewSignatureRequestInvitationMailJob("dara@example.com", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.ToEmail != "dara@example.com" {
		t.Errorf("ToEmail = %q", job.ToEmail)
	}
	if job.TemplateFile != mailer.TemplateSignatureRequestInvitation {
		t.Errorf("TemplateFile = %q", job.TemplateFile)
	}
	if job.Try != 0 {
		t.Errorf("Try = %d, want 0", job.Try)
	}

	var decoded mailer.SignatureRequestInvitationData
	if err := json.Unmarshal(job.Data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal job data: %v", err)
	}
	if decoded != data {
		t.Errorf("decoded data = %+v, want %+v", decoded, data)
	}
}

func TestNewDocumentCompletedMailJobTemplate(t *testing.T) {
	job, err := NewDocumentCompletedMailJob("owner@example.com", mailer.DocumentCompletedData{
		RecipientName: "Visal",
		DocumentName:  "Lease Agreement",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.TemplateFile != mailer.TemplateDocumentCompleted {
		t.Errorf("TemplateFile = %q", job.TemplateFile)
	}
}
