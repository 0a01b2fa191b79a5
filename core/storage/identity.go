package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Identity is the principal the configured credentials resolve to.
type Identity struct {
	Account string `json:"account"`
	ARN     string `json:"arn"`
}

// VerifyIdentity resolves the configured credentials before any bucket is
// touched, so a bad profile fails setup instead of every bucket.
// Providers other than aws, and aws with a custom endpoint, have no STS to
// ask and return an empty identity.
func VerifyIdentity(ctx context.Context, cfg Config) (*Identity, error) {
	if cfg.Provider == ProviderMinio || cfg.Endpoint != "" {
		return &Identity{}, nil
	}

	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	resp, err := sts.NewFromConfig(awsCfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to verify credentials for profile %q: %w", cfg.Profile, err)
	}

	return &Identity{
		Account: aws.ToString(resp.Account),
		ARN:     aws.ToString(resp.Arn),
	}, nil
}
