package repository

import (
	"context"
	"errors"

	"github.com/minio/minio-go/v7"
	"github.com/rithvisal/inksign/internal/apperror"
	"github.com/rithvisal/inksign/internal/config"
	"github.com/rithvisal/inksign/internal/model"
	"github.com/rithvisal/inksign/pkg/esign"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type baseRepository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
	cfg    *config.Config
	s3     *minio.Client
}

type Repository struct {
	// DB can be used for transaction. Example usage:
	// tx := r.DB.Begin()
	// defer tx.Commit()
	// Then pass tx to the repository function. and use tx.Rollback() if error occurred
	DB       *gorm.DB
	User     *UserRepository
	Document *DocumentRepository
	Field    *FieldRepository
	Signer   *SignerRepository
	Session  *SessionRepository
}

func newBaseRepository(db *gorm.DB, logger *zap.SugaredLogger, cfg *config.Config, s3 *minio.Client) *baseRepository {
	return &baseRepository{db: db, logger: logger, cfg: cfg, s3: s3}
}

func NewRepository(db *gorm.DB, logger *zap.SugaredLogger, cfg *config.Config, s3 *minio.Client) *Repository {
	br := newBaseRepository(db, logger, cfg, s3)
	_documentRepo := &DocumentRepository{baseRepository: br}
	_fieldRepo := &FieldRepository{baseRepository: br}
	_signerRepo := &SignerRepository{baseRepository: br, field: _fieldRepo}

	return &Repository{
		DB:       db,
		User:     &UserRepository{baseRepository: br},
		Document: _documentRepo,
		Field:    _fieldRepo,
		Signer:   _signerRepo,
		Session: &SessionRepository{
			baseRepository: br,
			document:       _documentRepo,
			field:          _fieldRepo,
			signer:         _signerRepo,
		},
	}
}

// withTx runs fn inside a transaction. Every operation that touches a
// document together with its fields or signers goes through here so that one
// document is always mutated as a single consistency unit.
func (b baseRepository) withTx(db *gorm.DB, fn func(*gorm.DB) error) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})

	if err != nil {
		b.logger.Debugf("withTx transaction error: %v", err)
	}

	return err
}

func (b baseRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}

	return b.db
}

// lockDocument loads a document row with a row lock, serializing every
// conflicting operation on the same document. Concurrent operations on
// different documents stay parallel.
func (b baseRepository) lockDocument(ctx context.Context, tx *gorm.DB, documentID string) (*model.Document, error) {
	var document model.Document
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", documentID).
		First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("document not found")
		}
		return nil, err
	}

	return &document, nil
}

func signerStates(signers []model.Signer) []esign.SignerState {
	states := make([]esign.SignerState, len(signers))
	for i, s := range signers {
		states[i] = esign.SignerState{ID: s.ID, Status: s.Status}
	}
	return states
}

func fieldStates(fields []model.SignatureField) []esign.FieldState {
	states := make([]esign.FieldState, len(fields))
	for i, f := range fields {
		states[i] = esign.FieldState{
			ID:         f.ID,
			AssignedTo: f.AssignedTo,
			Required:   f.Required,
			Completed:  f.Completed,
		}
	}
	return states
}
