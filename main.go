package main

import (
	"errors"
	"net/http"

	"tradeledger/src/api"
	"tradeledger/src/config"
	"tradeledger/src/utils"
	aws_handler "tradeledger/src/utils/aws"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings")
	if err != nil {
		logrus.WithError(err).Fatal("error while loading config")
	}

	logger := utils.NewLogger(cfg.Service.LogLevel)

	if err := resolveAPIKey(cfg); err != nil {
		logger.WithError(err).Fatal("could not resolve market-data API key")
	}

	errC, err := run(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("couldn't run")
	}

	if err := <-errC; err != nil {
		logger.WithError(err).Error("error while running")
	}
}

// resolveAPIKey swaps the configured secret name for its Secrets Manager
// value when one is set; otherwise the plain apiKey from settings is used.
func resolveAPIKey(cfg *config.Config) error {
	secretName := cfg.ExternalClients.Quotes.APIKeySecret
	if secretName == "" {
		return nil
	}

	awsHandler, err := aws_handler.NewAWSHandler(cfg.ExternalClients.Quotes.AWSRegion)
	if err != nil {
		return err
	}
	key, err := awsHandler.SecretManager.GetSecretValue(secretName)
	if err != nil {
		return err
	}
	cfg.ExternalClients.Quotes.APIKey = key
	return nil
}

func run(cfg *config.Config, logger *logrus.Logger) (<-chan error, error) {
	errC := make(chan error, 1)

	server, err := api.NewServer(cfg, logger)
	if err != nil {
		return nil, err
	}
	httpServer := api.NewHTTPServer(server, cfg.Service.Port)

	go func() {
		logger.WithField("port", cfg.Service.Port).Info("starting server")

		// "ListenAndServe always returns a non-nil error. After Shutdown or
		// Close, the returned error is ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()
	return errC, nil
}
