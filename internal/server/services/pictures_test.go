package services

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saschasalles/LabPlatformAPI/internal/common"
	"github.com/saschasalles/LabPlatformAPI/internal/server/config"
	"github.com/saschasalles/LabPlatformAPI/internal/server/models"
)

func stubPresignClients(t *testing.T, putURL, getURL string) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewClient := newS3ClientFromConfig
	origNewPresign := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewClient
		newS3PresignClient = origNewPresign
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return nil
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return nil }
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: putURL}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: getURL}, nil
	}
}

func newPictureService(t *testing.T, rm *fakeRepoManager) *PictureService {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return NewPictureService(nil, rm, cfg)
}

func TestRequestUploadURL(t *testing.T) {
	stubPresignClients(t, "https://s3.local/put", "")
	s := newPictureService(t, newFakeRepoManager())

	key, url, err := s.RequestUploadURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/put", url)
	assert.Contains(t, key, "avatars/")
}

func TestConfirmUpload(t *testing.T) {
	rm := newFakeRepoManager()
	s := newPictureService(t, rm)

	user := &models.User{ID: "u1", Email: "a@x.com"}
	public, err := s.ConfirmUpload(context.Background(), user, "avatars/2026/9/1/key")
	require.NoError(t, err)

	require.NotNil(t, public.ProfilePicture)
	assert.Equal(t, "avatars/2026/9/1/key", *public.ProfilePicture)
	require.Len(t, rm.u.saved, 1)
}

func TestViewURL(t *testing.T) {
	stubPresignClients(t, "", "https://s3.local/get")
	s := newPictureService(t, newFakeRepoManager())

	key := "avatars/2026/9/1/key"
	url, err := s.ViewURL(context.Background(), &models.User{ID: "u1", ProfilePicture: &key})
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/get", url)
}

func TestViewURL_NoPicture(t *testing.T) {
	s := newPictureService(t, newFakeRepoManager())

	_, err := s.ViewURL(context.Background(), &models.User{ID: "u1"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
