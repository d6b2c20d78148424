package repository

import (
	"context"

	"github.com/rithvisal/inksign/internal/apperror"
	"github.com/rithvisal/inksign/internal/model"
	"github.com/rithvisal/inksign/pkg/esign"
	"gorm.io/gorm"
)

// SessionRepository is the entry point of a signer's signing flow. It
// resolves a (document, sign token) pair to an actionable session, validates
// field submissions and drives signer completion, cascading into document
// completion within the same transaction.
type SessionRepository struct {
	*baseRepository
	document *DocumentRepository
	field    *FieldRepository
	signer   *SignerRepository
}

// resolveSigner maps a sign token to its signer and verifies the token was
// minted for the requested document.
func (ser SessionRepository) resolveSigner(ctx context.Context, tx *gorm.DB, documentID, signToken string) (*model.Signer, error) {
	signer, err := ser.signer.GetByToken(ctx, tx, signToken)
	if err != nil {
		return nil, err
	}

	if signer.DocumentID != documentID {
		return nil, apperror.Forbidden("sign link does not belong to this document")
	}

	return signer, nil
}

// Open resolves a signing session: the document plus the fields assigned to
// the signer behind the token. With sequential signing enabled, a signer who
// is not yet eligible is rejected with out_of_sequence instead of being
// queued.
func (ser SessionRepository) Open(ctx context.Context, documentID, signToken string) (*model.Document, *model.Signer, []model.SignatureField, error) {
	ser.logger.Debugf("Open signing session for document: %s \n", documentID)

	document, err := ser.document.GetByID(ctx, nil, documentID)
	if err != nil {
		return nil, nil, nil, err
	}

	if document.IsDraft() {
		return nil, nil, nil, apperror.InvalidState("document has not been sent for signing yet")
	}

	// Re-evaluating on every read self-heals a crash between signer
	// completion and document completion.
	if document.IsPending() {
		if document, err = ser.document.EvaluateCompletion(ctx, nil, documentID); err != nil {
			return nil, nil, nil, err
		}
	}

	signer, err := ser.resolveSigner(ctx, nil, documentID, signToken)
	if err != nil {
		return nil, nil, nil, err
	}

	if document.IsPending() && !signer.IsCompleted() {
		signers, err := ser.signer.FindByDocumentID(ctx, nil, documentID)
		if err != nil {
			return nil, nil, nil, err
		}

		if !esign.IsEligible(signerStates(signers), document.SigningOrder, document.SequentialEnabled, signer.ID) {
			return nil, nil, nil, apperror.OutOfSequence("it is not this signer's turn to sign yet")
		}
	}

	fields, err := ser.field.FindByDocumentAndSigner(ctx, nil, documentID, signer.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	return document, signer, fields, nil
}

// SubmitField captures the value of one field for the signer behind the
// token. The field must be assigned to that signer and not completed yet.
func (ser SessionRepository) SubmitField(ctx context.Context, documentID, signToken, fieldID, value string) (*model.SignatureField, error) {
	ser.logger.Debugf("Submit field %s on document: %s \n", fieldID, documentID)

	var field *model.SignatureField

	err := ser.withTx(ser.db, func(tx *gorm.DB) error {
		document, err := ser.lockDocument(ctx, tx, documentID)
		if err != nil {
			return err
		}

		if !document.IsPending() {
			return apperror.InvalidState("document is not open for signing")
		}

		signer, err := ser.resolveSigner(ctx, tx, documentID, signToken)
		if err != nil {
			return err
		}

		if signer.IsCompleted() {
			return apperror.InvalidState("signer has already completed the document")
		}

		signers, err := ser.signer.FindByDocumentID(ctx, tx, documentID)
		if err != nil {
			return err
		}

		if !esign.IsEligible(signerStates(signers), document.SigningOrder, document.SequentialEnabled, signer.ID) {
			return apperror.OutOfSequence("it is not this signer's turn to sign yet")
		}

		field, err = ser.field.getByIDTx(ctx, tx, fieldID)
		if err != nil {
			return err
		}

		if field.DocumentID != documentID {
			return apperror.NotFound("field not found")
		}

		if field.AssignedTo != signer.ID {
			return apperror.Forbidden("field is not assigned to this signer")
		}

		if field.Completed {
			return apperror.InvalidState("field has already been completed")
		}

		if err := esign.ValidateFieldValue(field.Type, value); err != nil {
			return apperror.Validation(err.Error())
		}

		return ser.field.completeTx(ctx, tx, field, value)
	})

	return field, err
}

// Finish completes the signer's session once every required field assigned
// to them is completed, then re-evaluates document completion. Both steps
// run in one transaction so a completed signer can never be lost between
// them.
func (ser SessionRepository) Finish(ctx context.Context, documentID, signToken string) (*model.Signer, *model.Document, error) {
	ser.logger.Debugf("Finish signing session on document: %s \n", documentID)

	var (
		signer   *model.Signer
		document *model.Document
	)

	err := ser.withTx(ser.db, func(tx *gorm.DB) error {
		var err error
		document, err = ser.lockDocument(ctx, tx, documentID)
		if err != nil {
			return err
		}

		if !document.IsPending() {
			return apperror.InvalidState("document is not open for signing")
		}

		signer, err = ser.resolveSigner(ctx, tx, documentID, signToken)
		if err != nil {
			return err
		}

		signer, err = ser.signer.completeTx(ctx, tx, document, signer)
		if err != nil {
			return err
		}

		document, err = ser.document.evaluateCompletion(ctx, tx, documentID)
		return err
	})

	return signer, document, err
}
