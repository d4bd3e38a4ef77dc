package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew_ProductionUsesJSON(t *testing.T) {
	log := New("debug", "production")

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestNew_DevelopmentUsesText(t *testing.T) {
	log := New("warn", "development")

	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log := New("loud", "development")

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
