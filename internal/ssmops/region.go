package ssmops

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// ErrNoRegion means neither an explicit override nor the ambient
// credential/config chain yielded a usable region.
var ErrNoRegion = errors.New("could not establish region; pass --region or configure AWS credentials")

// ResolveConfig loads AWS configuration from the ambient chain
// (environment, credential file, config file) and applies the region
// override, if any. An override is validated against the list of
// available regions before use.
func ResolveConfig(ctx context.Context, regionOverride string) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}

	if regionOverride != "" {
		known, err := regionAvailable(ctx, cfg, regionOverride)
		if err != nil {
			return aws.Config{}, err
		}
		if !known {
			return aws.Config{}, fmt.Errorf("region %q not in list of available regions", regionOverride)
		}
		cfg.Region = regionOverride
	}
	if cfg.Region == "" {
		return aws.Config{}, ErrNoRegion
	}
	return cfg, nil
}

func regionAvailable(ctx context.Context, cfg aws.Config, region string) (bool, error) {
	// Region listing works from any region; fall back to us-east-1 when
	// the chain resolved none.
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	out, err := ec2.NewFromConfig(cfg).DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		AllRegions: aws.Bool(true),
	})
	if err != nil {
		return false, fmt.Errorf("list available regions: %w", err)
	}
	for _, r := range out.Regions {
		if aws.ToString(r.RegionName) == region {
			return true, nil
		}
	}
	return false, nil
}
