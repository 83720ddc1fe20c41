package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platerental/config"
)

func TestNewR2Uploader_RequiresConfig(t *testing.T) {
	_, err := NewR2Uploader(context.Background(), &config.Config{R2Bucket: "receipts"})
	assert.ErrorContains(t, err, "R2")
}

func TestNewR2Uploader(t *testing.T) {
	u, err := NewR2Uploader(context.Background(), &config.Config{
		R2Bucket:          "receipts",
		R2AccountID:       "acc123",
		R2PublicURL:       "https://files.example.com/",
		R2AccessKeyID:     "key",
		R2SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "receipts", u.bucket)
	assert.Equal(t, "https://files.example.com", u.publicBase)
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://files.example.com/receipt%20client%207.pdf",
		publicURL("https://files.example.com", "receipt client 7.pdf"))
}
