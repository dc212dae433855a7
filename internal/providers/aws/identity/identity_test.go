package identity

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	awsStd "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSTSClient struct {
	getCallerIdentityFunc func(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

func (m *mockSTSClient) GetCallerIdentity(
	ctx context.Context,
	params *sts.GetCallerIdentityInput,
	optFns ...func(*sts.Options),
) (*sts.GetCallerIdentityOutput, error) {
	if m.getCallerIdentityFunc != nil {
		return m.getCallerIdentityFunc(ctx, params, optFns...)
	}
	return nil, errors.New("not implemented")
}

func TestGetCallerWithClient(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("returns account and arn", func(t *testing.T) {
		client := &mockSTSClient{
			getCallerIdentityFunc: func(
				_ context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options),
			) (*sts.GetCallerIdentityOutput, error) {
				return &sts.GetCallerIdentityOutput{
					Account: awsStd.String("123456789012"),
					Arn:     awsStd.String("arn:aws:iam::123456789012:user/deployer"),
				}, nil
			},
		}

		caller, err := GetCallerWithClient(ctx, client, logger)

		require.NoError(t, err)
		assert.Equal(t, "123456789012", caller.AccountID)
		assert.Equal(t, "arn:aws:iam::123456789012:user/deployer", caller.ARN)
	})

	t.Run("wraps client errors", func(t *testing.T) {
		caller, err := GetCallerWithClient(ctx, &mockSTSClient{}, logger)

		require.Error(t, err)
		assert.Nil(t, caller)
		assert.Contains(t, err.Error(), "STS GetCallerIdentity failed")
	})

	t.Run("empty account", func(t *testing.T) {
		client := &mockSTSClient{
			getCallerIdentityFunc: func(
				_ context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options),
			) (*sts.GetCallerIdentityOutput, error) {
				return &sts.GetCallerIdentityOutput{}, nil
			},
		}

		caller, err := GetCallerWithClient(ctx, client, logger)

		require.Error(t, err)
		assert.Nil(t, caller)
		assert.Contains(t, err.Error(), "empty account ID")
	})
}
