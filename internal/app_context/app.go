package appcontext

import (
	"github.com/minio/minio-go/v7"
	"github.com/rithvisal/inksign/internal/auth"
	"github.com/rithvisal/inksign/internal/config"
	"github.com/rithvisal/inksign/internal/mailer"
	"github.com/rithvisal/inksign/internal/queue"
	"github.com/rithvisal/inksign/internal/repository"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// Mailer handles email-sending functions.
	Mailer mailer.Client

	// JWTService manages JWT operations for authentication such as generate, verify, refresh token.
	JWTService auth.JWTInterface

	S3 *minio.Client

	// Queue carries invitation and completion mail jobs to the mail consumer.
	Queue *queue.RabbitMQ
}
