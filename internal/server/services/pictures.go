package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/saschasalles/LabPlatformAPI/internal/common"
	sc "github.com/saschasalles/LabPlatformAPI/internal/server/config"
	"github.com/saschasalles/LabPlatformAPI/internal/server/models"
	"github.com/saschasalles/LabPlatformAPI/internal/server/repositories/repomanager"
)

// seams for tests
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// PictureService manages profile pictures stored in an S3-compatible backend.
// Clients upload and download directly through short-lived presigned URLs;
// the user record only holds the object key.
type PictureService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	config *sc.Config
}

func NewPictureService(db *sql.DB, repos repomanager.RepositoryManager, config *sc.Config) *PictureService {
	return &PictureService{
		db:     db,
		repos:  repos,
		config: config,
	}
}

func randomPictureKey() string {
	d := time.Now()
	return fmt.Sprintf("avatars/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *PictureService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// RequestUploadURL returns a fresh object key and a presigned PUT URL the
// caller uploads the picture to. The key is not recorded on the user until
// ConfirmUpload.
func (s *PictureService) RequestUploadURL(ctx context.Context) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := randomPictureKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// ConfirmUpload records the uploaded object key on the caller's account and
// returns the updated public view.
func (s *PictureService) ConfirmUpload(ctx context.Context, user *models.User, key string) (*models.PublicUser, error) {
	user.ProfilePicture = &key

	saved, err := s.repos.Users(s.db).Save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return saved.AsPublic(), nil
}

// ViewURL returns a presigned GET URL for the caller's current picture, or
// ErrNotFound when none is set.
func (s *PictureService) ViewURL(ctx context.Context, user *models.User) (string, error) {
	if user.ProfilePicture == nil || *user.ProfilePicture == "" {
		return "", common.ErrNotFound
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    user.ProfilePicture,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
