package repository

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/rithvisal/inksign/internal/apperror"
	constant "github.com/rithvisal/inksign/internal/constant"
	"github.com/rithvisal/inksign/internal/model"
	"github.com/rithvisal/inksign/internal/util"
	"github.com/rithvisal/inksign/pkg/esign"
	"gorm.io/gorm"
)

// SignerRepository owns signer records: creation with their capability sign
// link, draft-only deletion with field unassignment, and the signer
// completion step of the signing flow.
type SignerRepository struct {
	*baseRepository
	field *FieldRepository
}

func (sr SignerRepository) Create(ctx context.Context, signer *model.Signer) (*model.Signer, error) {
	sr.logger.Debugf("Create signer on document: %s with email: %s \n", signer.DocumentID, signer.Email)

	err := sr.withTx(sr.db, func(tx *gorm.DB) error {
		document, err := sr.lockDocument(ctx, tx, signer.DocumentID)
		if err != nil {
			return err
		}

		if !esign.CanEditStructure(document.Status) {
			return apperror.InvalidState("signers can only be added while the document is a draft")
		}

		var count int64
		if err := tx.WithContext(ctx).Model(&model.Signer{}).
			Where("document_id = ? AND email = ?", signer.DocumentID, signer.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperror.Validation("a signer with this email already exists on the document")
		}

		token, err := util.GenerateNChar(constant.SIGN_TOKEN_LENGTH)
		if err != nil {
			return err
		}

		signer.Status = constant.SignerStatusPending
		signer.CompletedAt = nil
		signer.SignToken = token
		signer.SignURL = util.BuildSignURL(sr.cfg.FrontendURL, signer.DocumentID, token)

		return tx.WithContext(ctx).Create(signer).Error
	})

	return signer, err
}

// Delete removes a signer while the document is still a draft. Fields
// assigned to the signer are unassigned, never deleted, and the signer is
// stripped from the signing order.
func (sr SignerRepository) Delete(ctx context.Context, signerID string) error {
	sr.logger.Debugf("Delete signer with signerID: %s \n", signerID)

	return sr.withTx(sr.db, func(tx *gorm.DB) error {
		signer, err := sr.getByIDTx(ctx, tx, signerID)
		if err != nil {
			return err
		}

		document, err := sr.lockDocument(ctx, tx, signer.DocumentID)
		if err != nil {
			return err
		}

		if !esign.CanEditStructure(document.Status) {
			return apperror.InvalidState("signers can only be deleted while the document is a draft")
		}

		if err := sr.field.unassignForSignerTx(ctx, tx, signer.DocumentID, signerID); err != nil {
			return err
		}

		if slices.Contains(document.SigningOrder, signerID) {
			document.SigningOrder = slices.DeleteFunc(document.SigningOrder, func(id string) bool {
				return id == signerID
			})
			if err := tx.WithContext(ctx).Save(document).Error; err != nil {
				return err
			}
		}

		return tx.WithContext(ctx).Delete(&model.Signer{}, "id = ?", signerID).Error
	})
}

func (sr SignerRepository) GetByID(ctx context.Context, tx *gorm.DB, signerID string) (*model.Signer, error) {
	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return sr.getByIDTx(ctx, db, signerID)
}

func (sr SignerRepository) getByIDTx(ctx context.Context, tx *gorm.DB, signerID string) (*model.Signer, error) {
	var signer model.Signer
	if err := tx.WithContext(ctx).Model(&model.Signer{}).Where("id = ?", signerID).First(&signer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("signer not found")
		}
		return nil, err
	}

	return &signer, nil
}

// GetByToken resolves a sign token to its signer record.
func (sr SignerRepository) GetByToken(ctx context.Context, tx *gorm.DB, signToken string) (*model.Signer, error) {
	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var signer model.Signer
	if err := db.WithContext(ctx).Model(&model.Signer{}).Where("sign_token = ?", signToken).First(&signer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("signer not found")
		}
		return nil, err
	}

	return &signer, nil
}

// FindByDocumentID returns every signer of the document in insertion order.
func (sr SignerRepository) FindByDocumentID(ctx context.Context, tx *gorm.DB, documentID string) ([]model.Signer, error) {
	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var signers []model.Signer
	if err := db.WithContext(ctx).Model(&model.Signer{}).
		Where("document_id = ?", documentID).
		Order("created_at ASC").
		Find(&signers).Error; err != nil {
		return nil, err
	}

	return signers, nil
}

// FindByDocumentAndEmail returns the signer of the document with the given
// email, used for the uploader-as-signer link.
func (sr SignerRepository) FindByDocumentAndEmail(ctx context.Context, tx *gorm.DB, documentID, email string) (*model.Signer, error) {
	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var signer model.Signer
	if err := db.WithContext(ctx).Model(&model.Signer{}).
		Where("document_id = ? AND email = ?", documentID, email).
		First(&signer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("signer not found")
		}
		return nil, err
	}

	return &signer, nil
}

// completeTx performs the signer completion step inside the caller's
// transaction, with the document row already locked. Preconditions: the
// signer is pending, every required field assigned to them is completed and,
// when sequential signing is on, they are the earliest pending signer in the
// order.
func (sr SignerRepository) completeTx(ctx context.Context, tx *gorm.DB, document *model.Document, signer *model.Signer) (*model.Signer, error) {
	if signer.IsCompleted() {
		return nil, apperror.InvalidState("signer has already completed")
	}

	signers, err := sr.FindByDocumentID(ctx, tx, document.ID)
	if err != nil {
		return nil, err
	}

	if !esign.IsEligible(signerStates(signers), document.SigningOrder, document.SequentialEnabled, signer.ID) {
		return nil, apperror.OutOfSequence("it is not this signer's turn to sign yet")
	}

	fields, err := sr.field.FindByDocumentID(ctx, tx, document.ID)
	if err != nil {
		return nil, err
	}

	if incomplete := esign.IncompleteRequired(fieldStates(fields), signer.ID); len(incomplete) > 0 {
		sr.logger.Debugf("Signer %s has incomplete required fields: %v", signer.ID, incomplete)
		// First reason is the stable code, the rest are the offending field ids.
		return nil, apperror.NotReady("required fields are not completed yet",
			append([]string{esign.ReasonFieldsIncomplete}, incomplete...)...)
	}

	now := time.Now()
	signer.Status = constant.SignerStatusCompleted
	signer.CompletedAt = &now

	if err := tx.WithContext(ctx).Save(signer).Error; err != nil {
		return nil, err
	}

	return signer, nil
}
