package config

import (
	"context"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// LoadSSM overlays parameters from SSM Parameter Store onto the config
// map. Each parameter under prefix (e.g. /sundai/prod/RESEND_API_KEY)
// is mapped to its base name. Values already present in the map win,
// so local env vars always override remote secrets.
func LoadSSM(ctx context.Context, cfg map[string]string, prefix string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}
	client := ssm.NewFromConfig(awsCfg)

	var nextToken *string
	for {
		out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           aws.String(prefix),
			Recursive:      aws.Bool(true),
			WithDecryption: aws.Bool(true),
			NextToken:      nextToken,
		})
		if err != nil {
			return err
		}

		for _, p := range out.Parameters {
			name := path.Base(aws.ToString(p.Name))
			if name == "" || strings.HasPrefix(name, ".") {
				continue
			}
			if _, exists := cfg[name]; !exists {
				cfg[name] = aws.ToString(p.Value)
			}
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return nil
}
