package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	appcontext "github.com/rithvisal/inksign/internal/app_context"
	"github.com/rithvisal/inksign/internal/apperror"
	"github.com/rithvisal/inksign/internal/auth"
	"github.com/rithvisal/inksign/internal/model"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index    *IndexController
	Auth     *AuthController
	OAuth    *OAuthController
	User     *UserController
	Document *DocumentController
	Field    *FieldController
	Signer   *SignerController
	Signing  *SigningController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	googleOAuthConfig := &oauth2.Config{
		ClientID:     app.Config.Auth.GoogleOAuthConfig.ClientID,
		ClientSecret: app.Config.Auth.GoogleOAuthConfig.ClientSecret,
		RedirectURL:  app.Config.Auth.GoogleOAuthConfig.RedirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	return &Controller{
		Index:    &IndexController{baseController: bc},
		Auth:     &AuthController{baseController: bc},
		OAuth:    &OAuthController{baseController: bc, googleOAuthConfig: googleOAuthConfig},
		User:     &UserController{baseController: bc},
		Document: &DocumentController{baseController: bc},
		Field:    &FieldController{baseController: bc},
		Signer:   &SignerController{baseController: bc},
		Signing:  &SigningController{baseController: bc},
	}
}

func (b *baseController) getAuthUser(ctx *gin.Context) (*auth.JWTPayload, error) {
	user, exists := ctx.Get("user")
	if !exists {
		return nil, errors.New("user not found in context")
	}

	jsonUser, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	var authUser *auth.JWTPayload
	err = json.Unmarshal(jsonUser, &authUser)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return authUser, nil
}

// getOwnedDocument loads the document and verifies the authenticated user owns
// it. Every owner-facing operation goes through here.
func (b *baseController) getOwnedDocument(ctx *gin.Context, documentId string) (*auth.JWTPayload, *model.Document, error) {
	user, err := b.getAuthUser(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get auth user: %w", err)
	}

	document, err := b.app.Repository.Document.GetByID(ctx, nil, documentId)
	if err != nil {
		return nil, nil, err
	}

	if document.CreatedBy != user.ID {
		return nil, nil, apperror.Forbidden("you do not have access to this document")
	}

	return user, document, nil
}
