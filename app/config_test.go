package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	tempFile, err := os.CreateTemp("", "config*.env")
	if err != nil {
		t.Fatalf("Failed to create temporary config file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	configData := []byte(`
PORT=8080
ENVIRONMENT=development
VERSION=1.0.0
TRUSTED_ORIGINS="http://localhost:3000,http://localhost:3001"
POSTGRES_HOST=localhost
POSTGRES_PORT=5432
POSTGRES_USER=testuser
POSTGRES_PASSWORD=testpassword
POSTGRES_DB=testdb
MAIL_HOST=smtp.example.com
MAIL_PORT=587
MAIL_USER=testuser@example.com
MAIL_PASSWORD=testpassword
MAIL_SENDER=sender@example.com
RABBITMQ_HOST=rabbitmq.example.com
RABBITMQ_PORT=5672
RABBITMQ_USER=testuser
RABBITMQ_PASSWORD=testpassword
RATE_LIMIT_RPS=5
RATE_LIMIT_BURST=10
RATE_LIMIT_ENABLED=true
`)
	if _, err := tempFile.Write(configData); err != nil {
		t.Fatalf("Failed to write test configuration to temporary file: %v", err)
	}

	config, err := loadConfig(tempFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, config.TrustedOrigins)
	assert.Equal(t, "localhost", config.DBHost)
	assert.Equal(t, "5432", config.DBPort)
	assert.Equal(t, "testuser", config.DBUser)
	assert.Equal(t, "testpassword", config.DBPassword)
	assert.Equal(t, "testdb", config.DBName)
	assert.Equal(t, "smtp.example.com", config.MailHost)
	assert.Equal(t, 587, config.MailPort)
	assert.Equal(t, "testuser@example.com", config.MailUser)
	assert.Equal(t, "testpassword", config.MailPassword)
	assert.Equal(t, "sender@example.com", config.MailSender)
	assert.Equal(t, "rabbitmq.example.com", config.MQHost)
	assert.Equal(t, "5672", config.MQPort)
	assert.Equal(t, "testuser", config.MQUser)
	assert.Equal(t, "testpassword", config.MQPassword)
	assert.Equal(t, float64(5), config.RateLimitRPS)
	assert.Equal(t, 10, config.RateLimitBurst)
	assert.True(t, config.RateLimitEnabled)
}

func TestLoadConfigDefaults(t *testing.T) {
	tempFile, err := os.CreateTemp("", "config*.env")
	if err != nil {
		t.Fatalf("Failed to create temporary config file: %v", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write([]byte("PORT=8080\n")); err != nil {
		t.Fatalf("Failed to write test configuration to temporary file: %v", err)
	}

	config, err := loadConfig(tempFile.Name())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, float64(2), config.RateLimitRPS)
	assert.Equal(t, 4, config.RateLimitBurst)
	assert.True(t, config.RateLimitEnabled)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig("does-not-exist.env")
	assert.Error(t, err)
}
