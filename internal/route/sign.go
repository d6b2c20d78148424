package route

import (
	"github.com/gin-gonic/gin"
	"github.com/rithvisal/inksign/internal/controller"
)

// Signer routes are authenticated by the sign token in the url, not by jwt.
func V1_Sign(r *gin.RouterGroup, sgc *controller.SigningController) {
	v1 := r.Group("/v1/sign")
	{
		v1.GET("/:documentId/:token", sgc.OpenSession)
		v1.POST("/:documentId/:token/fields/:fieldId", sgc.SubmitField)
		v1.POST("/:documentId/:token/finish", sgc.FinishSession)
	}
}
