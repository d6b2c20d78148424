package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rithvisal/inksign/internal/apperror"
	"github.com/rithvisal/inksign/internal/mailer"
	"github.com/rithvisal/inksign/internal/model"
	"github.com/rithvisal/inksign/internal/queue"
	"github.com/rithvisal/inksign/internal/util"
	"github.com/skip2/go-qrcode"
	svg "github.com/wamuir/svg-qr-code"
)

type SignerController struct {
	*baseController
}

const QRCodeSize = 256

func (sc SignerController) ensureSignerOfDocument(ctx *gin.Context, documentId, signerId string) (*model.Signer, error) {
	signer, err := sc.app.Repository.Signer.GetByID(ctx, nil, signerId)
	if err != nil {
		return nil, err
	}

	if signer.DocumentID != documentId {
		return nil, apperror.NotFound("signer not found")
	}

	return signer, nil
}

func (sc SignerController) AddSigner(ctx *gin.Context) {
	type Request struct {
		Name  string `json:"name" form:"name" binding:"required,strNotEmpty,cmax=100"`
		Email string `json:"email" form:"email" binding:"required,email"`
	}
	var body Request

	documentId := ctx.Param("documentId")

	if _, _, err := sc.getOwnedDocument(ctx, documentId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		sc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	signer, err := sc.app.Repository.Signer.Create(ctx, &model.Signer{
		DocumentID: documentId,
		Name:       body.Name,
		Email:      body.Email,
	})
	if err != nil {
		util.ResponseError(ctx, "Failed to add signer", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"signer": signer,
	})
}

func (sc SignerController) DeleteSigner(ctx *gin.Context) {
	documentId := ctx.Param("documentId")
	signerId := ctx.Param("signerId")

	if _, _, err := sc.getOwnedDocument(ctx, documentId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	if _, err := sc.ensureSignerOfDocument(ctx, documentId, signerId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	if err := sc.app.Repository.Signer.Delete(ctx, signerId); err != nil {
		util.ResponseError(ctx, "Failed to delete signer", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (sc SignerController) ListSigners(ctx *gin.Context) {
	documentId := ctx.Param("documentId")

	if _, _, err := sc.getOwnedDocument(ctx, documentId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	signers, err := sc.app.Repository.Signer.FindByDocumentID(ctx, nil, documentId)
	if err != nil {
		util.ResponseError(ctx, "Failed to list signers", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"signers": signers,
	})
}

// ResendInvitation enqueues a reminder mail for a signer who has not
// completed yet. Only meaningful while the document is pending.
func (sc SignerController) ResendInvitation(ctx *gin.Context) {
	documentId := ctx.Param("documentId")
	signerId := ctx.Param("signerId")

	user, document, err := sc.getOwnedDocument(ctx, documentId)
	if err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	if !document.IsPending() {
		util.ResponseError(ctx, "", apperror.InvalidState("invitations can only be resent while the document is pending"))
		return
	}

	signer, err := sc.ensureSignerOfDocument(ctx, documentId, signerId)
	if err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	if signer.IsCompleted() {
		util.ResponseError(ctx, "", apperror.InvalidState("signer has already completed the document"))
		return
	}

	ownerName := strings.TrimSpace(fmt.Sprintf("%s %s", user.FirstName, user.LastName))
	job, err := queue.NewSignatureRequestReminderMailJob(signer.Email, mailer.SignatureRequestInvitationData{
		SignerName:   signer.Name,
		OwnerName:    ownerName,
		DocumentName: document.Name,
		SignURL:      signer.SignURL,
	})
	if err != nil {
		sc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to build reminder mail", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := sc.app.Queue.PublishMailJob(job); err != nil {
		sc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to enqueue reminder mail", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

// SignerQRCode renders the signer's sign link as a qr code, png by default
// or svg with ?format=svg.
func (sc SignerController) SignerQRCode(ctx *gin.Context) {
	documentId := ctx.Param("documentId")
	signerId := ctx.Param("signerId")

	if _, _, err := sc.getOwnedDocument(ctx, documentId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	signer, err := sc.ensureSignerOfDocument(ctx, documentId, signerId)
	if err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	switch ctx.DefaultQuery("format", "png") {
	case "svg":
		qr, err := svg.New(signer.SignURL)
		if err != nil {
			sc.app.Logger.Error(err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to generate qr code", util.GenerateErrorMessages(err), nil)
			return
		}

		ctx.Data(http.StatusOK, "image/svg+xml", []byte(qr.String()))
	case "png":
		png, err := qrcode.Encode(signer.SignURL, qrcode.Medium, QRCodeSize)
		if err != nil {
			sc.app.Logger.Error(err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to generate qr code", util.GenerateErrorMessages(err), nil)
			return
		}

		ctx.Data(http.StatusOK, "image/png", png)
	default:
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid format",
			util.GenerateErrorMessages(apperror.Validation("format must be png or svg"), "format"), nil)
	}
}
