package logging_test

import (
	"github.com/grovetools/llmcompare/logging"
	"github.com/sirupsen/logrus"
)

func ExampleNewLogger() {
	// Create a logger for your component
	log := logging.NewLogger("my-component")

	log.Debug("Debug information")
	log.Info("Starting comparison")
	log.Warn("Backend slow to respond")

	// Add structured fields
	log.WithFields(logrus.Fields{
		"models": 3,
		"path":   "/summarization/compare",
	}).Info("Request sent")

	// Use WithError for errors
	// err := client.Health(ctx)
	// log.WithError(err).Error("Backend unreachable")
}
