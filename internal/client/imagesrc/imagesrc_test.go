package imagesrc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	lastIn *s3.GetObjectInput
	body   []byte
	err    error
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.lastIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body))}, nil
}

func stubS3(t *testing.T, fake *fakeS3) *s3.Options {
	t.Helper()
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew
	})

	var captured s3.Options
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		return aws.Config{Region: lo.Region}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectGetter {
		for _, fn := range optFns {
			fn(&captured)
		}
		return fake
	}
	return &captured
}

func TestLoad_LocalFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "icon.png")
	require.NoError(t, os.WriteFile(p, []byte("PNG"), 0o600))

	img, err := NewResolver(S3Config{}).Load(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, "icon.png", img.Name)
	assert.Equal(t, []byte("PNG"), img.Data)
	assert.True(t, img.IsUpload())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewResolver(S3Config{}).Load(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_RemoteURLIsReference(t *testing.T) {
	img, err := NewResolver(S3Config{}).Load(context.Background(), "https://img/icon.png;")
	require.NoError(t, err)
	assert.Equal(t, "https://img/icon.png", img.URL)
	assert.False(t, img.IsUpload())
}

func TestLoad_Empty(t *testing.T) {
	_, err := NewResolver(S3Config{}).Load(context.Background(), "  ")
	require.ErrorIs(t, err, ErrEmptySource)
}

func TestLoad_S3(t *testing.T) {
	fake := &fakeS3{body: []byte("JPEG")}
	opts := stubS3(t, fake)

	r := NewResolver(S3Config{Region: "us-east-1", Endpoint: "http://127.0.0.1:9000", AccessKey: "minio", SecretKey: "minio123"})
	img, err := r.Load(context.Background(), "s3://photos/users/chef42/pie.jpg")

	require.NoError(t, err)
	assert.Equal(t, "pie.jpg", img.Name)
	assert.Equal(t, []byte("JPEG"), img.Data)
	assert.Equal(t, "photos", aws.ToString(fake.lastIn.Bucket))
	assert.Equal(t, "users/chef42/pie.jpg", aws.ToString(fake.lastIn.Key))
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}

func TestLoad_S3Errors(t *testing.T) {
	fake := &fakeS3{err: errors.New("access denied")}
	stubS3(t, fake)
	r := NewResolver(S3Config{Region: "us-east-1"})

	_, err := r.Load(context.Background(), "s3://photos")
	require.ErrorIs(t, err, ErrBadS3URI)

	_, err = r.Load(context.Background(), "s3://photos/a.jpg")
	require.ErrorContains(t, err, "access denied")
}

func TestLoad_TooLarge(t *testing.T) {
	fake := &fakeS3{body: make([]byte, MaxSize+1)}
	stubS3(t, fake)

	_, err := NewResolver(S3Config{Region: "us-east-1"}).Load(context.Background(), "s3://b/k.png")
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestLoadAll_StopsAtFirstError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, os.WriteFile(p, []byte{1}, 0o600))

	r := NewResolver(S3Config{})
	imgs, err := r.LoadAll(context.Background(), []string{p, "http://img/b.png"})
	require.NoError(t, err)
	assert.Len(t, imgs, 2)

	_, err = r.LoadAll(context.Background(), []string{p, ""})
	require.ErrorIs(t, err, ErrEmptySource)
}
