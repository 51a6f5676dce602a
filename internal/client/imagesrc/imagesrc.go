// Package imagesrc turns a user-supplied image location into upload content.
// Supported sources are local paths, s3://bucket/key objects and http(s) URLs,
// which are kept as references to images the server already has.
package imagesrc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/recipes/internal/client/models"
)

// MaxSize caps a single icon or photo.
const MaxSize = 10 << 20

var (
	ErrEmptySource = errors.New("empty image source")
	ErrTooLarge    = errors.New("image too large")
	ErrBadS3URI    = errors.New("malformed s3 uri")
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectGetter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// ObjectGetter is the part of *s3.Client the resolver uses.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config selects the object store. An empty Endpoint means AWS proper;
// otherwise path-style addressing is used (MinIO and friends).
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type Resolver struct {
	cfg S3Config

	mu     sync.Mutex
	client ObjectGetter
}

func NewResolver(cfg S3Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Load resolves src. Remote URLs come back as references with no data.
func (r *Resolver) Load(ctx context.Context, src string) (models.Image, error) {
	src = strings.TrimSpace(src)
	switch {
	case src == "":
		return models.Image{}, ErrEmptySource
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return models.Image{URL: models.NormalizeURL(src)}, nil
	case strings.HasPrefix(src, "s3://"):
		return r.loadS3(ctx, src)
	default:
		return loadFile(src)
	}
}

// LoadAll resolves every source, stopping at the first failure.
func (r *Resolver) LoadAll(ctx context.Context, srcs []string) ([]models.Image, error) {
	out := make([]models.Image, 0, len(srcs))
	for _, s := range srcs {
		img, err := r.Load(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s, err)
		}
		out = append(out, img)
	}
	return out, nil
}

func loadFile(p string) (models.Image, error) {
	f, err := os.Open(p)
	if err != nil {
		return models.Image{}, err
	}
	defer f.Close()

	data, err := readLimited(f)
	if err != nil {
		return models.Image{}, err
	}
	return models.Image{Name: filepath.Base(p), Data: data}, nil
}

func (r *Resolver) loadS3(ctx context.Context, uri string) (models.Image, error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(uri, "s3://"), "/")
	if !ok || bucket == "" || key == "" {
		return models.Image{}, fmt.Errorf("%w: %q", ErrBadS3URI, uri)
	}

	client, err := r.s3Client(ctx)
	if err != nil {
		return models.Image{}, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return models.Image{}, fmt.Errorf("get s3 object: %w", err)
	}
	defer out.Body.Close()

	data, err := readLimited(out.Body)
	if err != nil {
		return models.Image{}, err
	}
	return models.Image{Name: path.Base(key), Data: data}, nil
}

func (r *Resolver) s3Client(ctx context.Context) (ObjectGetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client != nil {
		return r.client, nil
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(r.cfg.Region)}
	if r.cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(r.cfg.AccessKey, r.cfg.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	r.client = newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if r.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(r.cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return r.client, nil
}

func readLimited(rd io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(rd, MaxSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
