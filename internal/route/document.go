package route

import (
	"github.com/gin-gonic/gin"
	"github.com/rithvisal/inksign/internal/controller"
	"github.com/rithvisal/inksign/internal/middleware"
)

func V1_Documents(r *gin.RouterGroup, dc *controller.DocumentController, fc *controller.FieldController, sc *controller.SignerController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/documents")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.POST("", dc.CreateDocument)
		v1.GET("", dc.ListDocuments)
		v1.GET("/:documentId", dc.GetDocumentById)
		v1.PATCH("/:documentId/name", dc.RenameDocument)
		v1.PATCH("/:documentId/signing-config", dc.UpdateSigningConfig)
		v1.PATCH("/:documentId/uploader-as-signer", dc.ToggleUploaderAsSigner)
		v1.POST("/:documentId/send", dc.SendDocument)
		v1.POST("/:documentId/unsend", dc.UnsendDocument)
		v1.POST("/:documentId/duplicate", dc.DuplicateDocument)
		v1.GET("/:documentId/download", dc.DownloadDocument)
		v1.GET("/:documentId/my-sign-link", dc.MySignLink)
		v1.DELETE("/:documentId", dc.DeleteDocument)

		v1.POST("/:documentId/fields", fc.AddField)
		v1.GET("/:documentId/fields", fc.ListFields)
		v1.PATCH("/:documentId/fields/:fieldId", fc.UpdateField)
		v1.DELETE("/:documentId/fields/:fieldId", fc.DeleteField)

		v1.POST("/:documentId/signers", sc.AddSigner)
		v1.GET("/:documentId/signers", sc.ListSigners)
		v1.DELETE("/:documentId/signers/:signerId", sc.DeleteSigner)
		v1.POST("/:documentId/signers/:signerId/resend", sc.ResendInvitation)
		v1.GET("/:documentId/signers/:signerId/qrcode", sc.SignerQRCode)
	}
}
