package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/portalsur/portalsur/internal/property"
)

const catalogKey = "catalog.json"

// S3Config holds explicit construction parameters for the S3 medium.
// Credentials come from the default AWS chain.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional; enables S3-compatible backends (e.g. MinIO)
	PathStyle bool
}

// S3Medium persists the whole catalog as one JSON object in a bucket.
// Mutations are GetObject, modify, PutObject — the hosted variant of the
// blob medium, with the same read-modify-write consistency model.
type S3Medium struct {
	client *s3.Client
	bucket string
}

// NewS3Medium creates an S3 medium from config.
func NewS3Medium(ctx context.Context, cfg S3Config) (*S3Medium, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &S3Medium{client: client, bucket: cfg.Bucket}, nil
}

func (m *S3Medium) read(ctx context.Context) ([]property.Property, error) {
	out, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &m.bucket,
		Key:    aws.String(catalogKey),
	})
	if err != nil {
		// An object that was never written is an empty catalog; every
		// other failure must surface.
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return []property.Property{}, nil
		}
		return nil, fmt.Errorf("fetching catalog object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading catalog object: %w", err)
	}

	var records []property.Property
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing catalog object: %w", err)
	}
	return records, nil
}

func (m *S3Medium) write(ctx context.Context, records []property.Property) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	if _, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &m.bucket,
		Key:         aws.String(catalogKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return fmt.Errorf("writing catalog object: %w", err)
	}
	return nil
}

// GetAll returns the stored records, most recent first.
func (m *S3Medium) GetAll(ctx context.Context) ([]property.Property, error) {
	return m.read(ctx)
}

// Insert prepends the record so native order stays most-recent-first.
func (m *S3Medium) Insert(ctx context.Context, p property.Property) error {
	records, err := m.read(ctx)
	if err != nil {
		return err
	}
	records = append([]property.Property{p}, records...)
	return m.write(ctx, records)
}

// Replace swaps the stored record with the same id, keeping its position.
func (m *S3Medium) Replace(ctx context.Context, p property.Property) error {
	records, err := m.read(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == p.ID {
			records[i] = p
			return m.write(ctx, records)
		}
	}
	return ErrNotFound
}

// RemoveByID drops the record with the given id.
func (m *S3Medium) RemoveByID(ctx context.Context, id string) error {
	records, err := m.read(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == id {
			records = append(records[:i], records[i+1:]...)
			return m.write(ctx, records)
		}
	}
	return ErrNotFound
}
