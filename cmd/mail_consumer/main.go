package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rithvisal/inksign/internal/config"
	"github.com/rithvisal/inksign/internal/env"
	"github.com/rithvisal/inksign/internal/mailer"
	"github.com/rithvisal/inksign/internal/queue"
	"github.com/rithvisal/inksign/internal/util"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

const (
	MAX_WORKER = 3
)

func main() {
	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)

	mail := mailer.NewGmailMailer(cfg.Mail.GMAIL_USERNAME, cfg.Mail.GMAIL_APP_PASSWORD, logger)
	app := queue.MailConsumerContext{
		Config: &cfg,
		Logger: logger,
		Mailer: mail,
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Panic("Error connecting to RabbitMQ: ", err)
	}
	logger.Info("RabbitMQ connected \n")
	defer func() {
		if err := rabbitMQ.Close(); err != nil {
			logger.Errorf("Failed to close RabbitMQ connection: %v", err)
		}
	}()

	ctx := context.Background()

	if err := rabbitMQ.ConsumeMailJob(ctx, mailJobHandler, MAX_WORKER, &app); err != nil {
		logger.Fatalf("Failed to consume mail job: %v", err)
	}

	logger.Infof("Started consuming mail job")

	// Block forever to keep the consumer running
	select {}
}

func mailJobHandler(ctx context.Context, jobPayload queue.MailJobPayload, app *queue.MailConsumerContext) (bool, error) {
	switch jobPayload.TemplateFile {
	case mailer.TemplateSignatureRequestInvitation, mailer.TemplateSignatureRequestReminder:
		var data mailer.SignatureRequestInvitationData
		if err := json.Unmarshal(jobPayload.Data, &data); err != nil {
			return false, fmt.Errorf("failed to unmarshal SignatureRequestInvitationData: %w", err)
		}

		return sendMail(app, jobPayload, data)
	case mailer.TemplateDocumentCompleted:
		var data mailer.DocumentCompletedData
		if err := json.Unmarshal(jobPayload.Data, &data); err != nil {
			return false, fmt.Errorf("failed to unmarshal DocumentCompletedData: %w", err)
		}

		return sendMail(app, jobPayload, data)
	default:
		return false, fmt.Errorf("unsupported template: %s", jobPayload.TemplateFile)
	}
}

func sendMail(app *queue.MailConsumerContext, jobPayload queue.MailJobPayload, data any) (bool, error) {
	status, err := app.Mailer.Send(jobPayload.TemplateFile, jobPayload.ToEmail, data)
	if err != nil {
		return true, fmt.Errorf("failed to send email: %w", err)
	}

	if status != http.StatusOK {
		return true, fmt.Errorf("email sending failed with status: %d", status)
	}

	return true, nil
}
