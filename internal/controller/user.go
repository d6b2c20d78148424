package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rithvisal/inksign/internal/util"
)

type UserController struct {
	*baseController
}

func (uc UserController) Me(ctx *gin.Context) {
	authUser, err := uc.getAuthUser(ctx)
	if err != nil {
		uc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	user, err := uc.app.Repository.User.GetByID(ctx, nil, authUser.ID)
	if err != nil {
		util.ResponseError(ctx, "", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user": user,
	})
}
