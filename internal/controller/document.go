package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/rithvisal/inksign/internal/apperror"
	"github.com/rithvisal/inksign/internal/constant"
	"github.com/rithvisal/inksign/internal/mailer"
	"github.com/rithvisal/inksign/internal/model"
	"github.com/rithvisal/inksign/internal/queue"
	"github.com/rithvisal/inksign/internal/util"
)

type DocumentController struct {
	*baseController
}

const (
	ErrDocumentFileRequired                = "document file is required"
	ErrDocumentFileIsInvalidOrNotSupported = "document file is invalid or not supported"
	ErrFailedToGetPageCountFromFile        = "failed to get page count from document file"

	DownloadURLExpiry = 15 * time.Minute
)

func (dc DocumentController) CreateDocument(ctx *gin.Context) {
	type Request struct {
		Name string `json:"name" form:"name" binding:"required,strNotEmpty,cmax=100"`
	}
	var body Request

	user, err := dc.getAuthUser(ctx)
	if err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	file, err := ctx.FormFile("documentFile")
	if err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "No document file uploaded", util.GenerateErrorMessages(errors.New(ErrDocumentFileRequired), "documentFile"), nil)
		return
	}

	// create temp file for the validated and optimized pdf
	tempFile, err := util.CreateTemp("document-*.pdf")
	if err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create temp file", util.GenerateErrorMessages(err), nil)
		return
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	// Optimize also validate the file
	if err := util.OptimizePdf(*file, tempFile.Name()); err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid document file", util.GenerateErrorMessages(errors.New(ErrDocumentFileIsInvalidOrNotSupported), "documentFile"), nil)
		return
	}

	src, err := os.Open(tempFile.Name())
	if err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to open optimized file", util.GenerateErrorMessages(err), nil)
		return
	}
	defer src.Close()

	pageCount, err := util.GetPageCount(src)
	if err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid document file", util.GenerateErrorMessages(errors.New(ErrFailedToGetPageCountFromFile), "documentFile"), nil)
		return
	}

	newDocumentId := uuid.NewString()

	info, err := util.UploadFileToS3ByFileHeader(file, &util.FileUploadOptions{
		DirectoryPath: util.GetDocumentDirectoryPath(newDocumentId),
		UniquePrefix:  true,
		Bucket:        dc.app.Config.Minio.BUCKET,
		S3:            dc.app.S3,
	})
	if err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to upload file", util.GenerateErrorMessages(err), nil)
		return
	}

	document, err := dc.app.Repository.Document.Create(ctx, nil, &model.Document{
		BaseModel:  model.BaseModel{ID: newDocumentId},
		Name:       body.Name,
		CreatedBy:  user.ID,
		FileBucket: info.Bucket,
		FileKey:    info.Key,
		FileName:   file.Filename,
		FileType:   file.Header.Get("Content-Type"),
		FileSize:   file.Size,
		PageCount:  pageCount,
	})
	if err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create document", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"document": document,
	})
}

func (dc DocumentController) ListDocuments(ctx *gin.Context) {
	type Request struct {
		Search   string `form:"search"`
		Status   string `form:"status"`
		Page     uint   `form:"page"`
		PageSize uint   `form:"pageSize"`
	}
	var query Request

	user, err := dc.getAuthUser(ctx)
	if err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ctx.ShouldBindQuery(&query); err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	var status []constant.DocumentStatus
	for _, s := range strings.Split(query.Status, ",") {
		ds := constant.DocumentStatus(strings.TrimSpace(s))
		if ds.Valid() {
			status = append(status, ds)
		}
	}

	documents, total, err := dc.app.Repository.Document.ListForOwner(ctx, nil, user.ID, query.Search, status, query.Page, query.PageSize)
	if err != nil {
		util.ResponseError(ctx, "Failed to list documents", err)
		return
	}

	pageSize := query.PageSize
	if pageSize == 0 || pageSize > constant.MaxPageSize {
		pageSize = constant.DefaultPageSize
	}

	util.ResponseSuccess(ctx, gin.H{
		"documents": documents,
		"total":     total,
		"totalPage": util.CalculateTotalPage(total, pageSize),
	})
}

func (dc DocumentController) GetDocumentById(ctx *gin.Context) {
	documentId := ctx.Param("documentId")

	_, document, err := dc.getOwnedDocument(ctx, documentId)
	if err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	// A pending document may already have every signer completed if a crash
	// happened between signer and document completion. Re-evaluate on read.
	if document.IsPending() {
		if _, err := dc.app.Repository.Document.EvaluateCompletion(ctx, nil, documentId); err != nil {
			util.ResponseError(ctx, "", err)
			return
		}

		if document, err = dc.app.Repository.Document.GetByID(ctx, nil, documentId); err != nil {
			util.ResponseError(ctx, "", err)
			return
		}
	}

	util.ResponseSuccess(ctx, gin.H{
		"document": document,
	})
}

func (dc DocumentController) RenameDocument(ctx *gin.Context) {
	type Request struct {
		Name string `json:"name" form:"name" binding:"required,strNotEmpty,cmax=100"`
	}
	var body Request

	documentId := ctx.Param("documentId")

	if _, _, err := dc.getOwnedDocument(ctx, documentId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	document, err := dc.app.Repository.Document.Rename(ctx, documentId, body.Name)
	if err != nil {
		util.ResponseError(ctx, "Failed to rename document", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"document": document,
	})
}

func (dc DocumentController) UpdateSigningConfig(ctx *gin.Context) {
	type Request struct {
		SequentialEnabled bool     `json:"sequentialEnabled" form:"sequentialEnabled"`
		SigningOrder      []string `json:"signingOrder" form:"signingOrder"`
	}
	var body Request

	documentId := ctx.Param("documentId")

	if _, _, err := dc.getOwnedDocument(ctx, documentId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	document, err := dc.app.Repository.Document.SetSigningConfig(ctx, documentId, body.SequentialEnabled, body.SigningOrder)
	if err != nil {
		util.ResponseError(ctx, "Failed to update signing config", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"document": document,
	})
}

// ToggleUploaderAsSigner links or unlinks the owner as one of the document's
// signers. Enabling creates the owner's signer record when missing, disabling
// removes it again.
func (dc DocumentController) ToggleUploaderAsSigner(ctx *gin.Context) {
	type Request struct {
		Enabled bool `json:"enabled" form:"enabled"`
	}
	var body Request

	documentId := ctx.Param("documentId")

	user, _, err := dc.getOwnedDocument(ctx, documentId)
	if err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	document, err := dc.app.Repository.Document.SetUploaderAsSigner(ctx, nil, documentId, body.Enabled)
	if err != nil {
		util.ResponseError(ctx, "Failed to update document", err)
		return
	}

	ownerSigner, err := dc.app.Repository.Signer.FindByDocumentAndEmail(ctx, nil, documentId, user.Email)
	hasOwnerSigner := err == nil

	if body.Enabled && !hasOwnerSigner {
		name := strings.TrimSpace(fmt.Sprintf("%s %s", user.FirstName, user.LastName))
		if _, err := dc.app.Repository.Signer.Create(ctx, &model.Signer{
			DocumentID: documentId,
			Name:       name,
			Email:      user.Email,
		}); err != nil {
			util.ResponseError(ctx, "Failed to add owner as signer", err)
			return
		}
	}

	if !body.Enabled && hasOwnerSigner {
		if err := dc.app.Repository.Signer.Delete(ctx, ownerSigner.ID); err != nil {
			util.ResponseError(ctx, "Failed to remove owner signer", err)
			return
		}
	}

	util.ResponseSuccess(ctx, gin.H{
		"document": document,
	})
}

// SendDocument transitions the document to pending and enqueues an invitation
// mail per signer. Mail delivery is fire-and-forget, a failed publish is
// logged and never rolls back the send.
func (dc DocumentController) SendDocument(ctx *gin.Context) {
	documentId := ctx.Param("documentId")

	user, _, err := dc.getOwnedDocument(ctx, documentId)
	if err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	document, err := dc.app.Repository.Document.Send(ctx, documentId)
	if err != nil {
		util.ResponseError(ctx, "Failed to send document", err)
		return
	}

	signers, err := dc.app.Repository.Signer.FindByDocumentID(ctx, nil, documentId)
	if err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	ownerName := strings.TrimSpace(fmt.Sprintf("%s %s", user.FirstName, user.LastName))
	for _, signer := range signers {
		job, err := queue.NewSignatureRequestInvitationMailJob(signer.Email, mailer.SignatureRequestInvitationData{
			SignerName:   signer.Name,
			OwnerName:    ownerName,
			DocumentName: document.Name,
			SignURL:      signer.SignURL,
		})
		if err != nil {
			dc.app.Logger.Errorf("Failed to build invitation mail job for %s: %v", signer.Email, err)
			continue
		}

		if err := dc.app.Queue.PublishMailJob(job); err != nil {
			dc.app.Logger.Errorf("Failed to publish invitation mail job for %s: %v", signer.Email, err)
		}
	}

	util.ResponseSuccess(ctx, gin.H{
		"document": document,
	})
}

func (dc DocumentController) UnsendDocument(ctx *gin.Context) {
	documentId := ctx.Param("documentId")

	if _, _, err := dc.getOwnedDocument(ctx, documentId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	document, err := dc.app.Repository.Document.Unsend(ctx, documentId)
	if err != nil {
		util.ResponseError(ctx, "Failed to unsend document", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"document": document,
	})
}

func (dc DocumentController) DeleteDocument(ctx *gin.Context) {
	documentId := ctx.Param("documentId")

	if _, _, err := dc.getOwnedDocument(ctx, documentId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	document, err := dc.app.Repository.Document.Delete(ctx, documentId)
	if err != nil {
		util.ResponseError(ctx, "Failed to delete document", err)
		return
	}

	// Records are gone, the stored file is best-effort cleanup.
	if err := dc.app.S3.RemoveObject(context.Background(), document.FileBucket, document.FileKey, minio.RemoveObjectOptions{}); err != nil {
		dc.app.Logger.Errorf("Failed to remove document file %s: %v", document.FileKey, err)
	}

	util.ResponseSuccess(ctx, nil)
}

func (dc DocumentController) DuplicateDocument(ctx *gin.Context) {
	documentId := ctx.Param("documentId")

	if _, _, err := dc.getOwnedDocument(ctx, documentId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	document, err := dc.app.Repository.Document.Duplicate(ctx, documentId)
	if err != nil {
		util.ResponseError(ctx, "Failed to duplicate document", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"document": document,
	})
}

// MySignLink returns the owner's own sign url when they are linked as one of
// the signers, so they can sign without digging through invitation mail.
func (dc DocumentController) MySignLink(ctx *gin.Context) {
	documentId := ctx.Param("documentId")

	user, document, err := dc.getOwnedDocument(ctx, documentId)
	if err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	if !document.UploaderAsSigner {
		util.ResponseError(ctx, "", apperror.InvalidState("you are not a signer of this document"))
		return
	}

	signer, err := dc.app.Repository.Signer.FindByDocumentAndEmail(ctx, nil, documentId, user.Email)
	if err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"signUrl": signer.SignURL,
	})
}

// DownloadDocument hands out a time-limited presigned url instead of
// streaming the file through the api.
func (dc DocumentController) DownloadDocument(ctx *gin.Context) {
	documentId := ctx.Param("documentId")

	_, document, err := dc.getOwnedDocument(ctx, documentId)
	if err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	url, err := util.GetPresignedURL(dc.app.S3, document.FileBucket, document.FileKey, DownloadURLExpiry)
	if err != nil {
		dc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to generate download url", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"url":       url,
		"expiresIn": DownloadURLExpiry.Seconds(),
	})
}
