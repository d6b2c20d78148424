package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rithvisal/inksign/internal/mailer"
	"github.com/rithvisal/inksign/internal/model"
	"github.com/rithvisal/inksign/internal/queue"
	"github.com/rithvisal/inksign/internal/util"
)

// SigningController serves the signer-facing routes. There is no jwt here,
// the sign token in the url is the whole credential.
type SigningController struct {
	*baseController
}

func (sgc SigningController) OpenSession(ctx *gin.Context) {
	documentId := ctx.Param("documentId")
	signToken := ctx.Param("token")

	document, signer, fields, err := sgc.app.Repository.Session.Open(ctx, documentId, signToken)
	if err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"document": document,
		"signer":   signer,
		"fields":   fields,
	})
}

func (sgc SigningController) SubmitField(ctx *gin.Context) {
	type Request struct {
		Value string `json:"value" form:"value" binding:"required"`
	}
	var body Request

	documentId := ctx.Param("documentId")
	signToken := ctx.Param("token")
	fieldId := ctx.Param("fieldId")

	if err := ctx.ShouldBind(&body); err != nil {
		sgc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	field, err := sgc.app.Repository.Session.SubmitField(ctx, documentId, signToken, fieldId, body.Value)
	if err != nil {
		util.ResponseError(ctx, "Failed to submit field", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"field": field,
	})
}

func (sgc SigningController) FinishSession(ctx *gin.Context) {
	documentId := ctx.Param("documentId")
	signToken := ctx.Param("token")

	signer, document, err := sgc.app.Repository.Session.Finish(ctx, documentId, signToken)
	if err != nil {
		util.ResponseError(ctx, "Failed to finish signing", err)
		return
	}

	if document.IsCompleted() {
		sgc.notifyDocumentCompleted(ctx, document)
	}

	util.ResponseSuccess(ctx, gin.H{
		"signer":   signer,
		"document": document,
	})
}

// notifyDocumentCompleted enqueues a completion mail to the owner and every
// signer. Publish failures are logged, never surfaced to the signer.
func (sgc SigningController) notifyDocumentCompleted(ctx *gin.Context, document *model.Document) {
	type recipient struct {
		name  string
		email string
	}

	var recipients []recipient

	owner, err := sgc.app.Repository.User.GetByID(ctx, nil, document.CreatedBy)
	if err != nil {
		sgc.app.Logger.Errorf("Failed to load owner of document %s: %v", document.ID, err)
	} else {
		recipients = append(recipients, recipient{name: owner.FirstName, email: owner.Email})
	}

	signers, err := sgc.app.Repository.Signer.FindByDocumentID(ctx, nil, document.ID)
	if err != nil {
		sgc.app.Logger.Errorf("Failed to load signers of document %s: %v", document.ID, err)
	}
	for _, s := range signers {
		// The owner may also be a signer, do not mail them twice.
		if owner != nil && s.Email == owner.Email {
			continue
		}
		recipients = append(recipients, recipient{name: s.Name, email: s.Email})
	}

	for _, r := range recipients {
		job, err := queue.NewDocumentCompletedMailJob(r.email, mailer.DocumentCompletedData{
			RecipientName: r.name,
			DocumentName:  document.Name,
		})
		if err != nil {
			sgc.app.Logger.Errorf("Failed to build completion mail job for %s: %v", r.email, err)
			continue
		}

		if err := sgc.app.Queue.PublishMailJob(job); err != nil {
			sgc.app.Logger.Errorf("Failed to publish completion mail job for %s: %v", r.email, err)
		}
	}
}
