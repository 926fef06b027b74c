package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	putIn   *s3.PutObjectInput
	getErr  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.putIn = in
	f.objects[*in.Bucket+"/"+*in.Key] = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(v))}, nil
}

type fakePresign struct {
	in *s3.GetObjectInput
}

func (f *fakePresign) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	var o s3.PresignOptions
	for _, fn := range optFns {
		fn(&o)
	}
	if o.Expires != presignExpiry {
		return nil, errors.New("unexpected expiry")
	}
	f.in = in
	return &v4.PresignedHTTPRequest{URL: "https://s3.local/" + *in.Bucket + "/" + *in.Key + "?sig=1"}, nil
}

func TestS3Store_PutOpenLink(t *testing.T) {
	api := &fakeS3{objects: map[string]string{}}
	pre := &fakePresign{}
	store := &S3Store{bucket: "lms", api: api, presign: pre}
	ctx := context.Background()

	raw, err := store.Put(ctx, "cat1", "My Notes.pdf", "application/pdf", strings.NewReader("pdf"), 3)
	require.NoError(t, err)

	require.NotNil(t, api.putIn)
	assert.Equal(t, "application/pdf", aws.ToString(api.putIn.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(api.putIn.ContentLength))
	assert.True(t, strings.HasPrefix(aws.ToString(api.putIn.Key), "cat1/"))
	assert.True(t, strings.HasSuffix(aws.ToString(api.putIn.Key), "-My Notes.pdf"))

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "s3", u.Scheme)
	assert.Equal(t, "lms", u.Host)

	rc, err := store.Open(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, "pdf", readAll(t, rc))

	link, err := store.Link(ctx, u)
	require.NoError(t, err)
	assert.Contains(t, link, "sig=1")
	assert.Equal(t, aws.ToString(api.putIn.Key), aws.ToString(pre.in.Key))
}

func TestS3Store_OpenErrors(t *testing.T) {
	api := &fakeS3{objects: map[string]string{}}
	store := &S3Store{bucket: "lms", api: api, presign: &fakePresign{}}
	u, _ := url.Parse("s3://lms/cat1/missing.pdf")

	_, err := store.Open(context.Background(), u)
	assert.ErrorIs(t, err, ErrBlobNotFound)

	api.getErr = errors.New("access denied")
	_, err = store.Open(context.Background(), u)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBlobNotFound)
}

func TestNewS3Store_Config(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(_ context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-west-1", lo.Region)
		assert.NotNil(t, lo.Credentials)
		return aws.Config{Region: lo.Region}, nil
	}

	var endpoint string
	var pathStyle bool
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var o s3.Options
		for _, fn := range optFns {
			fn(&o)
		}
		endpoint = aws.ToString(o.BaseEndpoint)
		pathStyle = o.UsePathStyle
		return s3.New(o)
	}

	store, err := NewS3Store(context.Background(), S3Config{
		Bucket:    "lms",
		Region:    "eu-west-1",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)
	assert.Equal(t, "lms", store.bucket)
	assert.Equal(t, "http://127.0.0.1:9000", endpoint)
	assert.True(t, pathStyle)
}

func TestNewS3Store_Errors(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{})
	require.Error(t, err)

	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no profile")
	}

	_, err = NewS3Store(context.Background(), S3Config{Bucket: "lms"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load aws config")
}
