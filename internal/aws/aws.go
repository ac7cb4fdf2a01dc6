package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

type AWSClient struct {
	KMS *KMSClient
}

// NewAWSClient uses cfg when given and the default credential chain otherwise.
func NewAWSClient(ctx context.Context, cfg *aws.Config) (*AWSClient, error) {
	if cfg == nil {
		loaded, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		cfg = &loaded
	}

	return &AWSClient{
		KMS: NewKMSClient(*cfg),
	}, nil
}
