package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/ssolovyeva/tripkeeper/internal/common"
	sc "github.com/ssolovyeva/tripkeeper/internal/server/config"
	"github.com/ssolovyeva/tripkeeper/internal/server/models"
	"github.com/ssolovyeva/tripkeeper/internal/server/repositories/repomanager"
)

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

// TripService implements trip CRUD and photo attachment. Photo bytes never
// pass through the server: clients upload and download through presigned
// S3 URLs.
type TripService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewTripService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *TripService {
	return &TripService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// GetRandomStorageKey returns an object key partitioned by date, with a uuid
// to avoid collisions.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("trips/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// List returns all trips owned by userID.
func (s *TripService) List(ctx context.Context, userID string) ([]*models.Trip, error) {
	repo := s.repomanager.Trips(s.db)
	result, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing trips: %v", err)
	}
	return result, nil
}

// Create stores a new trip for userID. The end date must not precede the
// start date.
func (s *TripService) Create(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	if trip.Title == "" {
		return nil, common.ErrorValidation
	}
	if trip.EndDate.Before(trip.StartDate) {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Trips(s.db)
	created, err := repo.Create(ctx, trip)
	if err != nil {
		return nil, fmt.Errorf("error creating trip: %v", err)
	}
	return created, nil
}

// Delete removes a trip owned by userID. Missing trips yield
// common.ErrorNotFound.
func (s *TripService) Delete(ctx context.Context, id string, userID string) error {
	repo := s.repomanager.Trips(s.db)
	if err := repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting trip: %v", err)
	}
	return nil
}

// CreatePhotoUpload registers a photo for a trip the user owns and returns
// the stored photo together with a presigned PUT URL the client uploads to.
func (s *TripService) CreatePhotoUpload(ctx context.Context, tripID string, userID string, contentType string) (*models.Photo, string, error) {
	tripRepo := s.repomanager.Trips(s.db)
	if _, err := tripRepo.GetByID(ctx, tripID, userID); err != nil {
		return nil, "", err
	}

	key, url, err := s.getPresignedPutURL(ctx)
	if err != nil {
		return nil, "", err
	}

	photoRepo := s.repomanager.Photos(s.db)
	photo, err := photoRepo.Create(ctx, &models.Photo{
		TripID:      tripID,
		StorageKey:  key,
		ContentType: contentType,
	})
	if err != nil {
		return nil, "", fmt.Errorf("error creating photo: %v", err)
	}

	return photo, url, nil
}

// PhotoDownloadURL returns a presigned GET URL for a photo attached to a trip
// the user owns.
func (s *TripService) PhotoDownloadURL(ctx context.Context, tripID string, userID string, photoID string) (string, error) {
	tripRepo := s.repomanager.Trips(s.db)
	if _, err := tripRepo.GetByID(ctx, tripID, userID); err != nil {
		return "", err
	}

	photoRepo := s.repomanager.Photos(s.db)
	photo, err := photoRepo.GetByID(ctx, photoID, tripID)
	if err != nil {
		return "", err
	}

	return s.getPresignedGetURL(ctx, photo.StorageKey)
}

func (s *TripService) getPresignClient() (*s3.PresignClient, error) {
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

func (s *TripService) getPresignedPutURL(ctx context.Context) (string, string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))

	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

func (s *TripService) getPresignedGetURL(ctx context.Context, key string) (string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
