package aws

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
)

// MockedKeyID makes Decrypt return its input unchanged, for local runs.
const MockedKeyID = "MOCKED_KEY_ID"

var ErrMissingKeyID = errors.New("kms key id is required to decrypt a secret")

type decryptAPI interface {
	Decrypt(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error)
}

type KMSClient struct {
	Client decryptAPI
}

func NewKMSClient(cfg aws.Config) *KMSClient {
	return &KMSClient{Client: kms.NewFromConfig(cfg)}
}

// Decrypt turns a base64 KMS ciphertext into a gateway secret. Empty input
// yields an empty string and trailing newlines are stripped from the result.
func (c *KMSClient) Decrypt(ctx context.Context, keyId, encodedEncryptedStr string) (string, error) {
	if encodedEncryptedStr == "" {
		return "", nil
	}

	switch keyId {
	case "":
		return "", ErrMissingKeyID
	case MockedKeyID:
		return encodedEncryptedStr, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encodedEncryptedStr))
	if err != nil {
		return "", fmt.Errorf("secret is not base64: %w", err)
	}

	out, err := c.Client.Decrypt(ctx, &kms.DecryptInput{
		CiphertextBlob: decoded,
		KeyId:          aws.String(keyId),
	})
	if err != nil {
		return "", fmt.Errorf("kms decrypt failed: %w", err)
	}

	return strings.TrimRight(string(out.Plaintext), "\r\n"), nil
}
