package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rithvisal/inksign/internal/apperror"
	"github.com/rithvisal/inksign/internal/constant"
	"github.com/rithvisal/inksign/internal/model"
	"github.com/rithvisal/inksign/internal/util"
)

type FieldController struct {
	*baseController
}

type fieldRequest struct {
	Page       int     `json:"page" form:"page" binding:"required,number,gte=1"`
	X          float64 `json:"x" form:"x"`
	Y          float64 `json:"y" form:"y"`
	Width      float64 `json:"width" form:"width" binding:"required,gt=0"`
	Height     float64 `json:"height" form:"height" binding:"required,gt=0"`
	Type       string  `json:"type" form:"type" binding:"required,strNotEmpty"`
	AssignedTo string  `json:"assignedTo" form:"assignedTo"`
	Required   *bool   `json:"required" form:"required"`
}

func (fq fieldRequest) required() bool {
	if fq.Required == nil {
		return true
	}
	return *fq.Required
}

// ensureFieldOfDocument rejects a field id that belongs to another document,
// so nested routes cannot reach across documents.
func (fc FieldController) ensureFieldOfDocument(ctx *gin.Context, documentId, fieldId string) error {
	field, err := fc.app.Repository.Field.GetByID(ctx, nil, fieldId)
	if err != nil {
		return err
	}

	if field.DocumentID != documentId {
		return apperror.NotFound("field not found")
	}

	return nil
}

func (fc FieldController) AddField(ctx *gin.Context) {
	var body fieldRequest

	documentId := ctx.Param("documentId")

	if _, _, err := fc.getOwnedDocument(ctx, documentId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		fc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	field, err := fc.app.Repository.Field.Create(ctx, &model.SignatureField{
		DocumentID: documentId,
		Page:       body.Page,
		X:          body.X,
		Y:          body.Y,
		Width:      body.Width,
		Height:     body.Height,
		Type:       constant.FieldType(body.Type),
		Required:   body.required(),
	})
	if err != nil {
		util.ResponseError(ctx, "Failed to add field", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"field": field,
	})
}

func (fc FieldController) UpdateField(ctx *gin.Context) {
	var body fieldRequest

	documentId := ctx.Param("documentId")
	fieldId := ctx.Param("fieldId")

	if _, _, err := fc.getOwnedDocument(ctx, documentId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		fc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := fc.ensureFieldOfDocument(ctx, documentId, fieldId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	field, err := fc.app.Repository.Field.Update(ctx, &model.SignatureField{
		BaseModel:  model.BaseModel{ID: fieldId},
		DocumentID: documentId,
		Page:       body.Page,
		X:          body.X,
		Y:          body.Y,
		Width:      body.Width,
		Height:     body.Height,
		Type:       constant.FieldType(body.Type),
		AssignedTo: body.AssignedTo,
		Required:   body.required(),
	})
	if err != nil {
		util.ResponseError(ctx, "Failed to update field", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"field": field,
	})
}

func (fc FieldController) DeleteField(ctx *gin.Context) {
	documentId := ctx.Param("documentId")
	fieldId := ctx.Param("fieldId")

	if _, _, err := fc.getOwnedDocument(ctx, documentId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	if err := fc.ensureFieldOfDocument(ctx, documentId, fieldId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	if err := fc.app.Repository.Field.Delete(ctx, fieldId); err != nil {
		util.ResponseError(ctx, "Failed to delete field", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (fc FieldController) ListFields(ctx *gin.Context) {
	documentId := ctx.Param("documentId")

	if _, _, err := fc.getOwnedDocument(ctx, documentId); err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	fields, err := fc.app.Repository.Field.FindByDocumentID(ctx, nil, documentId)
	if err != nil {
		util.ResponseError(ctx, "Failed to list fields", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"fields": fields,
	})
}
