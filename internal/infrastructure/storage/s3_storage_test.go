package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glambooking/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testStorageConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Enabled:         true,
		Endpoint:        "http://localhost:9000",
		Region:          "eu-west-2",
		Bucket:          "branding",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		UsePathStyle:    true,
		PresignExpiry:   10 * time.Minute,
	}
}

func TestNewS3Storage_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil or disabled config", func(t *testing.T) {
		_, err := NewS3Storage(ctx, nil, nil)
		assert.ErrorIs(t, err, ErrDisabled)

		cfg := testStorageConfig()
		cfg.Enabled = false
		_, err = NewS3Storage(ctx, cfg, nil)
		assert.ErrorIs(t, err, ErrDisabled)
	})

	t.Run("missing bucket", func(t *testing.T) {
		cfg := testStorageConfig()
		cfg.Bucket = ""
		_, err := NewS3Storage(ctx, cfg, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("bad endpoint", func(t *testing.T) {
		cfg := testStorageConfig()
		cfg.Endpoint = "::not a url"
		_, err := NewS3Storage(ctx, cfg, nil)
		assert.Error(t, err)
	})

	t.Run("valid config", func(t *testing.T) {
		s, err := NewS3Storage(ctx, testStorageConfig(), zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.Equal(t, "branding", s.Bucket())
		assert.Equal(t, 10*time.Minute, s.expiry)
	})
}

func TestS3Storage_PresignUpload(t *testing.T) {
	s, err := NewS3Storage(context.Background(), testStorageConfig(), nil)
	require.NoError(t, err)

	up, err := s.PresignUpload(context.Background(), "branding/biz/logo.png", "image/png")
	require.NoError(t, err)

	u, err := url.Parse(up.UploadURL)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/branding/branding/biz/logo.png", u.Path)
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.Equal(t, "branding/biz/logo.png", up.ObjectKey)
	assert.Equal(t, "http://localhost:9000/branding/branding/biz/logo.png", up.PublicURL)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), up.ExpiresAt, 5*time.Second)

	_, err = s.PresignUpload(context.Background(), "", "image/png")
	assert.Error(t, err)
}

func TestS3Storage_PublicURL(t *testing.T) {
	t.Run("configured base", func(t *testing.T) {
		cfg := testStorageConfig()
		cfg.PublicBaseURL = "https://cdn.glambooking.co.uk/"
		s, err := NewS3Storage(context.Background(), cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.glambooking.co.uk/a/b.png", s.PublicURL("/a/b.png"))
	})

	t.Run("aws default", func(t *testing.T) {
		assert.Equal(t, "https://branding.s3.eu-west-2.amazonaws.com", defaultPublicBase("", "branding", "eu-west-2", false))
	})

	t.Run("virtual host style endpoint", func(t *testing.T) {
		base := defaultPublicBase("https://r2.example.com", "branding", "auto", false)
		assert.True(t, strings.HasPrefix(base, "https://branding.r2.example.com"))
	})
}
