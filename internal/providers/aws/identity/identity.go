// Package identity provides helpers for retrieving AWS identity information.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	awsStd "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// STSClient defines the STS operations used by this package.
type STSClient interface {
	GetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

// Caller is the principal whose credentials sign the provisioning requests.
type Caller struct {
	AccountID string
	ARN       string
}

// GetCaller retrieves the caller identity using the SDK client built from awsCfg.
func GetCaller(ctx context.Context, awsCfg *awsStd.Config, log *slog.Logger) (*Caller, error) {
	return GetCallerWithClient(ctx, sts.NewFromConfig(*awsCfg), log)
}

// GetCallerWithClient retrieves the caller identity using STS GetCallerIdentity.
func GetCallerWithClient(ctx context.Context, client STSClient, log *slog.Logger) (*Caller, error) {
	log.Debug("calling external service", "context", map[string]string{
		"operation": "STS.GetCallerIdentity",
	})

	output, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("STS GetCallerIdentity failed: %w", err)
	}

	if output.Account == nil || *output.Account == "" {
		return nil, errors.New("STS returned empty account ID")
	}

	return &Caller{
		AccountID: *output.Account,
		ARN:       awsStd.ToString(output.Arn),
	}, nil
}
