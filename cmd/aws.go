package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
)

func needsAWS(cfg Config) bool {
	return cfg.StoreBackend == storeBackendDynamo || cfg.PaypalClientSecretSSMParam != "" || cfg.Env == "prod"
}

func loadAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error

	// DynamoDB Local accepts any credentials but the SDK still wants some
	if cfg.DynamoEndpoint != "" && cfg.Env == "local" {
		opts = append(opts,
			config.WithRegion("us-east-1"),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
		)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to get aws config: %w", err)
	}

	otelaws.AppendMiddlewares(&awsCfg.APIOptions)

	return awsCfg, nil
}

type ssmParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// getPaypalClientSecret returns the configured secret, or reads it from SSM when only the
// parameter name is configured.
func getPaypalClientSecret(ctx context.Context, cfg Config, ssmClient ssmParameterGetter) (string, error) {
	if cfg.PaypalClientSecret != "" {
		return cfg.PaypalClientSecret, nil
	}

	out, err := ssmClient.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(cfg.PaypalClientSecretSSMParam),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get paypal client secret from ssm: %w", err)
	}

	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", errors.New("paypal client secret ssm parameter is empty")
	}

	return aws.ToString(out.Parameter.Value), nil
}
