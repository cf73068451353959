// Package archive persists completed search results to S3 so past
// weekends can be replayed without refetching any provider.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"weekender/config"
	"weekender/types"
)

// S3Config selects the bucket and the AWS config chain overrides. Empty
// fields fall back to the standard chain.
type S3Config struct {
	Bucket       string
	Prefix       string
	Region       string
	Profile      string
	UsePathStyle bool
}

// Archiver writes and reads search results as JSON objects under
// <prefix>/searches/<city>/<start>_<end>.json.
type Archiver struct {
	client *s3.Client
	bucket string
	prefix string
}

// New builds an archiver from the default AWS configuration chain.
func New(ctx context.Context, cfg S3Config) (*Archiver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket not configured")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &Archiver{client: client, bucket: cfg.Bucket, prefix: strings.Trim(cfg.Prefix, "/")}, nil
}

func (a *Archiver) key(city, startDate, endDate string) string {
	parts := []string{"searches", config.NormalizeCity(city), startDate + "_" + endDate + ".json"}
	if a.prefix != "" {
		parts = append([]string{a.prefix}, parts...)
	}
	return strings.Join(parts, "/")
}

// Store uploads one search result, replacing any earlier archive of the
// same city and date range.
func (a *Archiver) Store(ctx context.Context, result *types.SearchResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode search result: %w", err)
	}

	key := a.key(result.City, result.StartDate, result.EndDate)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	log.Printf("[Archive] Stored search result at s3://%s/%s", a.bucket, key)
	return nil
}

// Load fetches an archived result. Returns (nil, nil) when no archive
// exists for the city and range.
func (a *Archiver) Load(ctx context.Context, city, startDate, endDate string) (*types.SearchResult, error) {
	key := a.key(city, startDate, endDate)
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	defer out.Body.Close()

	var result types.SearchResult
	if err := json.NewDecoder(out.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &result, nil
}

// List returns the archive keys stored for a city.
func (a *Archiver) List(ctx context.Context, city string) ([]string, error) {
	prefix := strings.TrimSuffix(a.key(city, "", ""), "_.json")

	var keys []string
	var token *string
	for {
		out, err := a.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(a.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, err)
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}
	return keys, nil
}

func isNotFound(err error) bool {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}
