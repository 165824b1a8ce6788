package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ssmMaxBatchSize is the AWS limit on names per GetParameters call.
const ssmMaxBatchSize = 10

// ssmClient is the subset of the SSM SDK client used by SSMProvider.
type ssmClient interface {
	GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
}

// SSMProvider implements SecretProvider on top of AWS Systems Manager
// Parameter Store. The SDK client is created lazily, so constructing a
// provider never touches the network.
type SSMProvider struct {
	region string
	client ssmClient
}

// NewSSMProvider creates a provider for parameters stored in region.
func NewSSMProvider(region string) *SSMProvider {
	return &SSMProvider{region: region}
}

func newSSMProviderWithClient(region string, client ssmClient) *SSMProvider {
	return &SSMProvider{region: region, client: client}
}

func (p *SSMProvider) ensureClient(ctx context.Context) error {
	if p.client != nil {
		return nil
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if p.region != "" {
		opts = append(opts, awsconfig.WithRegion(p.region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("loading AWS config for SSM (region=%s): %w", p.region, err)
	}

	p.client = ssm.NewFromConfig(cfg)
	return nil
}

// GetParametersBatch resolves keys in batches of ten with decryption enabled.
// Any parameter SSM reports as invalid fails the whole call.
func (p *SSMProvider) GetParametersBatch(ctx context.Context, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return make(map[string]string), nil
	}

	if err := p.ensureClient(ctx); err != nil {
		return nil, err
	}

	result := make(map[string]string, len(keys))

	for i := 0; i < len(keys); i += ssmMaxBatchSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during SSM parameter retrieval: %w", err)
		}

		end := min(i+ssmMaxBatchSize, len(keys))

		output, err := p.client.GetParameters(ctx, &ssm.GetParametersInput{
			Names:          keys[i:end],
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			return nil, fmt.Errorf("SSM GetParameters failed (batch %d-%d of %d): %w",
				i, end-1, len(keys), err)
		}

		for _, param := range output.Parameters {
			if param.Name != nil && param.Value != nil {
				result[*param.Name] = *param.Value
			}
		}

		if len(output.InvalidParameters) > 0 {
			return nil, fmt.Errorf("SSM parameters not found: %v", output.InvalidParameters)
		}
	}

	return result, nil
}
