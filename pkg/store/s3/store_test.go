package s3_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpvault/pkg/account"
	s3store "github.com/dmitrymomot/otpvault/pkg/store/s3"
)

// MockS3Client is a mock implementation of the Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func newStore(t *testing.T, client *MockS3Client) *s3store.Store {
	t.Helper()
	s, err := s3store.New(context.Background(), s3store.Config{Bucket: "vault", Key: "accounts.json"}, s3store.WithClient(client))
	require.NoError(t, err)
	return s
}

func TestNewInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := s3store.New(context.Background(), s3store.Config{Key: "a.json"}, s3store.WithClient(&MockS3Client{}))
	assert.ErrorIs(t, err, s3store.ErrInvalidConfig)

	_, err = s3store.New(context.Background(), s3store.Config{Bucket: "vault", Key: "a.json"})
	assert.ErrorIs(t, err, s3store.ErrInvalidConfig)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("decodes object", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		body := `[{"name":"alice","secret":"MZXW6","note":"Example"}]`
		client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return *in.Bucket == "vault" && *in.Key == "accounts.json"
		}), mock.Anything).Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(body))}, nil)

		got, err := newStore(t, client).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []account.Account{{Name: "alice", Secret: "MZXW6", Note: "Example"}}, got)
		client.AssertExpectations(t)
	})

	t.Run("missing object is empty", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{})

		got, err := newStore(t, client).Load(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("access denied", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "nope"})

		_, err := newStore(t, client).Load(context.Background())
		assert.ErrorIs(t, err, s3store.ErrFailedToLoad)
		assert.ErrorIs(t, err, s3store.ErrAccessDenied)
	})

	t.Run("corrupt object", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString("{"))}, nil)

		_, err := newStore(t, client).Load(context.Background())
		assert.ErrorIs(t, err, s3store.ErrFailedToLoad)
	})
}

func TestSave(t *testing.T) {
	t.Parallel()

	t.Run("uploads json", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		var uploaded []byte
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return *in.Bucket == "vault" && *in.Key == "accounts.json" && *in.ContentType == "application/json"
		}), mock.Anything).Run(func(args mock.Arguments) {
			in := args.Get(1).(*s3.PutObjectInput)
			uploaded, _ = io.ReadAll(in.Body)
		}).Return(&s3.PutObjectOutput{}, nil)

		accounts := []account.Account{{Name: "bob", Secret: "MZXW6"}}
		require.NoError(t, newStore(t, client).Save(context.Background(), accounts))
		assert.JSONEq(t, `[{"name":"bob","secret":"MZXW6","note":""}]`, string(uploaded))
		client.AssertExpectations(t)
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		var uploaded []byte
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(1).(*s3.PutObjectInput).Body)
		}).Return(&s3.PutObjectOutput{}, nil)

		require.NoError(t, newStore(t, client).Save(context.Background(), nil))
		assert.JSONEq(t, `[]`, string(uploaded))
	})

	t.Run("bucket missing", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, &types.NoSuchBucket{})

		err := newStore(t, client).Save(context.Background(), nil)
		assert.ErrorIs(t, err, s3store.ErrFailedToSave)
		assert.ErrorIs(t, err, s3store.ErrBucketNotFound)
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()
		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, context.Canceled)

		err := newStore(t, client).Save(context.Background(), nil)
		assert.ErrorIs(t, err, s3store.ErrOperationCanceled)
	})
}
