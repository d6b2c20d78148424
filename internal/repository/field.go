package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rithvisal/inksign/internal/apperror"
	constant "github.com/rithvisal/inksign/internal/constant"
	"github.com/rithvisal/inksign/internal/model"
	"github.com/rithvisal/inksign/pkg/esign"
	"gorm.io/gorm"
)

// FieldRepository owns the placeable fields of every document: CRUD while
// the document is a draft, plus the completion path used by signing
// sessions.
type FieldRepository struct {
	*baseRepository
}

func (fr FieldRepository) Create(ctx context.Context, field *model.SignatureField) (*model.SignatureField, error) {
	fr.logger.Debugf("Create field on document: %s page: %d \n", field.DocumentID, field.Page)

	err := fr.withTx(fr.db, func(tx *gorm.DB) error {
		document, err := fr.lockDocument(ctx, tx, field.DocumentID)
		if err != nil {
			return err
		}

		if !esign.CanEditStructure(document.Status) {
			return apperror.InvalidState("fields can only be added while the document is a draft")
		}

		if !field.Type.Valid() {
			return apperror.Validation(fmt.Sprintf("unknown field type %q", field.Type))
		}

		if field.Page < 1 {
			return apperror.Validation("page must be a positive number")
		}
		if document.PageCount > 0 && field.Page > document.PageCount {
			return apperror.Validation(fmt.Sprintf("page must be between 1 and %d, but got %d", document.PageCount, field.Page))
		}

		// New fields start unassigned and incomplete, whatever the caller sent
		field.AssignedTo = ""
		field.Completed = false
		field.Value = ""

		return tx.WithContext(ctx).Create(field).Error
	})

	return field, err
}

// Update replaces the mutable attributes of a field: geometry, page, type,
// required and assignment. Structural edits and reassignment are locked once
// the document has been sent. Completion state is never touched here.
func (fr FieldRepository) Update(ctx context.Context, field *model.SignatureField) (*model.SignatureField, error) {
	fr.logger.Debugf("Update field with fieldID: %s \n", field.ID)

	var updated *model.SignatureField

	err := fr.withTx(fr.db, func(tx *gorm.DB) error {
		existing, err := fr.getByIDTx(ctx, tx, field.ID)
		if err != nil {
			return err
		}

		document, err := fr.lockDocument(ctx, tx, existing.DocumentID)
		if err != nil {
			return err
		}

		if !esign.CanEditStructure(document.Status) {
			return apperror.InvalidState("fields are locked after the document has been sent")
		}

		if !field.Type.Valid() {
			return apperror.Validation(fmt.Sprintf("unknown field type %q", field.Type))
		}

		if field.Page < 1 {
			return apperror.Validation("page must be a positive number")
		}
		if document.PageCount > 0 && field.Page > document.PageCount {
			return apperror.Validation(fmt.Sprintf("page must be between 1 and %d, but got %d", document.PageCount, field.Page))
		}

		if field.AssignedTo != "" {
			var count int64
			if err := tx.WithContext(ctx).Model(&model.Signer{}).
				Where("id = ? AND document_id = ?", field.AssignedTo, existing.DocumentID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperror.Validation("field cannot be assigned to a signer of another document")
			}
		}

		existing.Page = field.Page
		existing.X = field.X
		existing.Y = field.Y
		existing.Width = field.Width
		existing.Height = field.Height
		existing.Type = field.Type
		existing.Required = field.Required
		existing.AssignedTo = field.AssignedTo

		updated = existing
		return tx.WithContext(ctx).Save(existing).Error
	})

	return updated, err
}

func (fr FieldRepository) Delete(ctx context.Context, fieldID string) error {
	fr.logger.Debugf("Delete field with fieldID: %s \n", fieldID)

	return fr.withTx(fr.db, func(tx *gorm.DB) error {
		field, err := fr.getByIDTx(ctx, tx, fieldID)
		if err != nil {
			return err
		}

		document, err := fr.lockDocument(ctx, tx, field.DocumentID)
		if err != nil {
			return err
		}

		if !esign.CanEditStructure(document.Status) {
			return apperror.InvalidState("fields can only be deleted while the document is a draft")
		}

		return tx.WithContext(ctx).Delete(&model.SignatureField{}, "id = ?", fieldID).Error
	})
}

func (fr FieldRepository) GetByID(ctx context.Context, tx *gorm.DB, fieldID string) (*model.SignatureField, error) {
	db := fr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return fr.getByIDTx(ctx, db, fieldID)
}

func (fr FieldRepository) getByIDTx(ctx context.Context, tx *gorm.DB, fieldID string) (*model.SignatureField, error) {
	var field model.SignatureField
	if err := tx.WithContext(ctx).Model(&model.SignatureField{}).Where("id = ?", fieldID).First(&field).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("field not found")
		}
		return nil, err
	}

	return &field, nil
}

// FindByDocumentID returns every field of the document in insertion order.
func (fr FieldRepository) FindByDocumentID(ctx context.Context, tx *gorm.DB, documentID string) ([]model.SignatureField, error) {
	db := fr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var fields []model.SignatureField
	if err := db.WithContext(ctx).Model(&model.SignatureField{}).
		Where("document_id = ?", documentID).
		Order("created_at ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}

	return fields, nil
}

// FindByDocumentAndSigner returns the fields of the document assigned to the
// given signer, in insertion order.
func (fr FieldRepository) FindByDocumentAndSigner(ctx context.Context, tx *gorm.DB, documentID, signerID string) ([]model.SignatureField, error) {
	db := fr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var fields []model.SignatureField
	if err := db.WithContext(ctx).Model(&model.SignatureField{}).
		Where("document_id = ? AND assigned_to = ?", documentID, signerID).
		Order("created_at ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}

	return fields, nil
}

// unassignForSignerTx clears the assignment of every field held by the
// signer. Runs inside the caller's transaction, fields themselves survive.
func (fr FieldRepository) unassignForSignerTx(ctx context.Context, tx *gorm.DB, documentID, signerID string) error {
	fields, err := fr.FindByDocumentID(ctx, tx, documentID)
	if err != nil {
		return err
	}

	ids := esign.AssignedFieldIDs(fieldStates(fields), signerID)
	if len(ids) == 0 {
		return nil
	}

	return tx.WithContext(ctx).Model(&model.SignatureField{}).
		Where("id IN ?", ids).
		Update("assigned_to", "").Error
}

// completeTx marks a field completed with its captured value inside the
// caller's transaction. All permission and value checks happen in the
// session repository before this is called.
func (fr FieldRepository) completeTx(ctx context.Context, tx *gorm.DB, field *model.SignatureField, value string) error {
	field.Value = value
	field.Completed = true
	return tx.WithContext(ctx).Save(field).Error
}
