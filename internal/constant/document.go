package constant

// DocumentStatus follows the document lifecycle: a draft is editable, a
// pending document has been sent out for signing and a completed document has
// been signed by every signer. The only transitions are draft -> pending
// (send), pending -> draft (explicit unsend before any signer completes) and
// pending -> completed. Completed is terminal.
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusPending   DocumentStatus = "pending"
	DocumentStatusCompleted DocumentStatus = "completed"
)

func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusPending, DocumentStatusCompleted:
		return true
	}
	return false
}

type SignerStatus string

const (
	SignerStatusPending   SignerStatus = "pending"
	SignerStatusCompleted SignerStatus = "completed"
)

type FieldType string

const (
	FieldTypeSignature FieldType = "signature"
	FieldTypeInitial   FieldType = "initial"
	FieldTypeDate      FieldType = "date"
	FieldTypeText      FieldType = "text"
	FieldTypeCheckbox  FieldType = "checkbox"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeSignature, FieldTypeInitial, FieldTypeDate, FieldTypeText, FieldTypeCheckbox:
		return true
	}
	return false
}

// Length of the random sign token embedded in a signer's sign url. The token
// substitutes for authentication, so it must stay long enough to be
// unguessable.
const SIGN_TOKEN_LENGTH = 32
