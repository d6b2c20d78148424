package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rithvisal/inksign/internal/apperror"
	constant "github.com/rithvisal/inksign/internal/constant"
	"github.com/rithvisal/inksign/internal/model"
	"github.com/rithvisal/inksign/internal/util"
	"github.com/rithvisal/inksign/pkg/esign"
	"gorm.io/gorm"
)

// DocumentRepository is the authority over document status transitions. It is
// the only writer of the status column.
type DocumentRepository struct {
	*baseRepository
}

func (dr DocumentRepository) Create(ctx context.Context, tx *gorm.DB, document *model.Document) (*model.Document, error) {
	dr.logger.Debugf("Create document with name: %s \n", document.Name)

	db := dr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	document.Status = constant.DocumentStatusDraft
	if err := db.WithContext(ctx).Model(&model.Document{}).Create(document).Error; err != nil {
		return document, err
	}

	return document, nil
}

func (dr DocumentRepository) GetByID(ctx context.Context, tx *gorm.DB, documentID string) (*model.Document, error) {
	db := dr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var document model.Document
	if err := db.WithContext(ctx).Model(&model.Document{}).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("signature_fields.created_at ASC")
		}).
		Preload("Signers", func(db *gorm.DB) *gorm.DB {
			return db.Order("signers.created_at ASC")
		}).
		Where("id = ?", documentID).
		First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("document not found")
		}
		return nil, err
	}

	return &document, nil
}

func (dr DocumentRepository) ListForOwner(ctx context.Context, tx *gorm.DB, userID string, search string, status []constant.DocumentStatus, page, pageSize uint) ([]model.Document, int64, error) {
	dr.logger.Debugf("List documents for owner with userID: %s \n", userID)

	db := dr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if page == 0 {
		page = constant.DefaultPage
	}
	if pageSize == 0 || pageSize > constant.MaxPageSize {
		pageSize = constant.DefaultPageSize
	}

	query := db.WithContext(ctx).Model(&model.Document{}).
		Where("created_by = ?", userID)

	if len(status) > 0 {
		query = query.Where("documents.status IN (?)", status)
	}

	if search != "" {
		query = query.Where("documents.name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var documents []model.Document
	if err := query.Order("documents.created_at DESC").
		Offset(int((page - 1) * pageSize)).Limit(int(pageSize)).
		Find(&documents).Error; err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}

// Rename updates the display name. Allowed only while the document is draft.
func (dr DocumentRepository) Rename(ctx context.Context, documentID, name string) (*model.Document, error) {
	var document *model.Document

	err := dr.withTx(dr.db, func(tx *gorm.DB) error {
		var err error
		document, err = dr.lockDocument(ctx, tx, documentID)
		if err != nil {
			return err
		}

		if !document.IsDraft() {
			return apperror.InvalidState("document can only be renamed while it is a draft")
		}

		document.Name = name
		return tx.WithContext(ctx).Save(document).Error
	})

	return document, err
}

// SetSigningConfig replaces the sequential flag and the signing order
// wholesale. Allowed until the first signer completes.
func (dr DocumentRepository) SetSigningConfig(ctx context.Context, documentID string, sequentialEnabled bool, order []string) (*model.Document, error) {
	var document *model.Document

	err := dr.withTx(dr.db, func(tx *gorm.DB) error {
		var err error
		document, err = dr.lockDocument(ctx, tx, documentID)
		if err != nil {
			return err
		}

		var signers []model.Signer
		if err := tx.WithContext(ctx).Where("document_id = ?", documentID).Find(&signers).Error; err != nil {
			return err
		}

		if !esign.CanReorder(document.Status, signerStates(signers)) {
			return apperror.InvalidState("signing order can no longer be changed")
		}

		knownSigner := make(map[string]bool, len(signers))
		for _, s := range signers {
			knownSigner[s.ID] = true
		}
		for _, id := range order {
			if !knownSigner[id] {
				return apperror.Validation(fmt.Sprintf("signing order references unknown signer %s", id))
			}
		}

		document.SequentialEnabled = sequentialEnabled
		document.SigningOrder = model.SigningOrder(order)
		return tx.WithContext(ctx).Save(document).Error
	})

	return document, err
}

// SetUploaderAsSigner toggles the flag that links the owner as one of the
// signers. Draft only, the signer record itself is managed by the caller.
func (dr DocumentRepository) SetUploaderAsSigner(ctx context.Context, tx *gorm.DB, documentID string, enabled bool) (*model.Document, error) {
	db := dr.getDB(tx)

	document, err := dr.lockDocument(ctx, db, documentID)
	if err != nil {
		return nil, err
	}

	if !document.IsDraft() {
		return nil, apperror.InvalidState("document is not a draft")
	}

	document.UploaderAsSigner = enabled
	if err := db.WithContext(ctx).Save(document).Error; err != nil {
		return nil, err
	}

	return document, nil
}

// Send transitions draft -> pending. Preconditions: at least one signer, at
// least one field, no unassigned field, and a covering order when sequential
// mode is on. The not_ready error enumerates every failed precondition.
func (dr DocumentRepository) Send(ctx context.Context, documentID string) (*model.Document, error) {
	dr.logger.Debugf("Send document with documentID: %s \n", documentID)

	var document *model.Document

	err := dr.withTx(dr.db, func(tx *gorm.DB) error {
		var err error
		document, err = dr.lockDocument(ctx, tx, documentID)
		if err != nil {
			return err
		}

		if !document.IsDraft() {
			return apperror.InvalidState("only a draft document can be sent")
		}

		var signers []model.Signer
		if err := tx.WithContext(ctx).Where("document_id = ?", documentID).Order("created_at ASC").Find(&signers).Error; err != nil {
			return err
		}

		var fields []model.SignatureField
		if err := tx.WithContext(ctx).Where("document_id = ?", documentID).Order("created_at ASC").Find(&fields).Error; err != nil {
			return err
		}

		reasons := esign.SendReadiness(signerStates(signers), fieldStates(fields), document.SigningOrder, document.SequentialEnabled)
		if len(reasons) > 0 {
			return apperror.NotReady("document is not ready to be sent", reasons...)
		}

		document.Status = constant.DocumentStatusPending
		return tx.WithContext(ctx).Save(document).Error
	})

	return document, err
}

// Unsend transitions pending -> draft so the owner can edit fields and
// signers again. Rejected once any signer has completed. Partial field
// submissions are discarded on the way back to draft.
func (dr DocumentRepository) Unsend(ctx context.Context, documentID string) (*model.Document, error) {
	dr.logger.Debugf("Unsend document with documentID: %s \n", documentID)

	var document *model.Document

	err := dr.withTx(dr.db, func(tx *gorm.DB) error {
		var err error
		document, err = dr.lockDocument(ctx, tx, documentID)
		if err != nil {
			return err
		}

		if !document.IsPending() {
			return apperror.InvalidState("only a pending document can be unsent")
		}

		var completedSigners int64
		if err := tx.WithContext(ctx).Model(&model.Signer{}).
			Where("document_id = ? AND status = ?", documentID, constant.SignerStatusCompleted).
			Count(&completedSigners).Error; err != nil {
			return err
		}
		if completedSigners > 0 {
			return apperror.InvalidState("document cannot be unsent after a signer has completed")
		}

		// No signer has completed, so any completed field is a partial
		// submission. Discard it so a later send starts from a clean slate and
		// a reassigned field can be submitted again.
		var fields []model.SignatureField
		if err := tx.WithContext(ctx).Where("document_id = ?", documentID).Find(&fields).Error; err != nil {
			return err
		}
		if reset := esign.FieldsToReset(fieldStates(fields)); len(reset) > 0 {
			if err := tx.WithContext(ctx).Model(&model.SignatureField{}).
				Where("id IN ?", reset).
				Updates(map[string]any{"completed": false, "value": ""}).Error; err != nil {
				return err
			}
		}

		document.Status = constant.DocumentStatusDraft
		return tx.WithContext(ctx).Save(document).Error
	})

	return document, err
}

// EvaluateCompletion transitions pending -> completed once every signer has
// completed. It is idempotent and safe to re-trigger on any read of a
// pending document, which is how a crash between signer completion and
// document completion self-heals.
func (dr DocumentRepository) EvaluateCompletion(ctx context.Context, tx *gorm.DB, documentID string) (*model.Document, error) {
	if tx != nil {
		return dr.evaluateCompletion(ctx, tx, documentID)
	}

	var document *model.Document
	err := dr.withTx(dr.db, func(tx *gorm.DB) error {
		var err error
		document, err = dr.evaluateCompletion(ctx, tx, documentID)
		return err
	})

	return document, err
}

func (dr DocumentRepository) evaluateCompletion(ctx context.Context, tx *gorm.DB, documentID string) (*model.Document, error) {
	document, err := dr.lockDocument(ctx, tx, documentID)
	if err != nil {
		return nil, err
	}

	// Calling on an already completed (or still draft) document is a no-op.
	if !document.IsPending() {
		return document, nil
	}

	var signers []model.Signer
	if err := tx.WithContext(ctx).Where("document_id = ?", documentID).Find(&signers).Error; err != nil {
		return nil, err
	}

	if !esign.AllSignersCompleted(signerStates(signers)) {
		return document, nil
	}

	document.Status = constant.DocumentStatusCompleted
	if err := tx.WithContext(ctx).Save(document).Error; err != nil {
		return nil, err
	}

	dr.logger.Infof("Document %s completed by all signers", documentID)
	return document, nil
}

// Delete removes the document together with its fields and signers in one
// transaction, regardless of status. The stored file is cleaned up by the
// caller after the records are gone.
func (dr DocumentRepository) Delete(ctx context.Context, documentID string) (*model.Document, error) {
	dr.logger.Debugf("Delete document with documentID: %s \n", documentID)

	var document *model.Document

	err := dr.withTx(dr.db, func(tx *gorm.DB) error {
		var err error
		document, err = dr.lockDocument(ctx, tx, documentID)
		if err != nil {
			return err
		}

		if err := tx.WithContext(ctx).Where("document_id = ?", documentID).Delete(&model.SignatureField{}).Error; err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Where("document_id = ?", documentID).Delete(&model.Signer{}).Error; err != nil {
			return err
		}

		return tx.WithContext(ctx).Delete(&model.Document{}, "id = ?", documentID).Error
	})

	return document, err
}

// Duplicate produces a new draft document with the source's name suffixed
// "(Copy)" and its own copy of the stored file. Fields and signers are not
// duplicated.
func (dr DocumentRepository) Duplicate(ctx context.Context, documentID string) (*model.Document, error) {
	dr.logger.Debugf("Duplicate document with documentID: %s \n", documentID)

	source, err := dr.GetByID(ctx, nil, documentID)
	if err != nil {
		return nil, err
	}

	newID := uuid.NewString()
	newKey := util.ToDocumentDirectoryPath(newID, util.AddUniquePrefixToFileName(source.FileName))

	if _, err := util.CopyObjectInS3(dr.s3, source.FileBucket, source.FileKey, newKey); err != nil {
		return nil, fmt.Errorf("failed to copy document file: %w", err)
	}

	duplicate := &model.Document{
		BaseModel:  model.BaseModel{ID: newID},
		Name:       source.CopyName(),
		CreatedBy:  source.CreatedBy,
		FileBucket: source.FileBucket,
		FileKey:    newKey,
		FileName:   source.FileName,
		FileType:   source.FileType,
		FileSize:   source.FileSize,
		PageCount:  source.PageCount,
	}

	return dr.Create(ctx, nil, duplicate)
}
