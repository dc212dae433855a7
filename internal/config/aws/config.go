// Package aws contains AWS SDK configuration helpers for controleopcoes.
package aws

import (
	"context"
	"fmt"

	"github.com/controleopcoes/controleopcoes/internal/constants"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Options describes how to reach the AWS control plane.
type Options struct {
	Region string
	// Endpoint overrides the service endpoint, e.g. DynamoDB Local.
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// CredentialsSource names where credentials come from; used for logging only.
type CredentialsSource string

// Credential sources, in order of precedence.
const (
	CredentialsStatic       CredentialsSource = "static"
	CredentialsLocalDummy   CredentialsSource = "local-dummy"
	CredentialsDefaultChain CredentialsSource = "default-chain"
)

// CredentialsProvider returns the static provider to use, or nil to fall back
// on the SDK's default chain (environment, shared files, instance roles).
func (o Options) CredentialsProvider() (aws.CredentialsProvider, CredentialsSource) {
	switch {
	case o.AccessKeyID != "" && o.SecretAccessKey != "":
		return credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, o.SessionToken),
			CredentialsStatic
	case o.Endpoint != "":
		return credentials.NewStaticCredentialsProvider(
				constants.DynamoDBLocalCredential, constants.DynamoDBLocalCredential, ""),
			CredentialsLocalDummy
	default:
		return nil, CredentialsDefaultChain
	}
}

// LoadSDKConfig loads the AWS SDK configuration for opts.
func LoadSDKConfig(ctx context.Context, opts Options) (aws.Config, error) {
	loadOpts := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(opts.Region),
	}

	if provider, _ := opts.CredentialsProvider(); provider != nil {
		loadOpts = append(loadOpts, awsConfig.WithCredentialsProvider(provider))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS SDK configuration: %w", err)
	}

	if opts.Endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(opts.Endpoint)
	}

	return awsCfg, nil
}
