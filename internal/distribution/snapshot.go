// Package distribution reads CloudFront distribution state: a one-shot
// validation of the migration target and a polling wait for the CNAME
// swap to land.
package distribution

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/hthennin/cfswap/internal/dnsname"
)

// API abstracts the CloudFront distribution lookup.
type API interface {
	GetDistribution(ctx context.Context, params *cloudfront.GetDistributionInput, optFns ...func(*cloudfront.Options)) (*cloudfront.GetDistributionOutput, error)
}

// Snapshot is a point-in-time read of a distribution's configuration.
// It is produced fresh on every fetch and never mutated.
type Snapshot struct {
	CanonicalDomain string   // the dxxxx.cloudfront.net name, normalized
	Aliases         []string // alternate domain names, as returned by the API
	IPv6Enabled     bool
}

// HasAlias reports whether alias is among the snapshot's alternate
// domain names, ignoring case and trailing dots.
func (s Snapshot) HasAlias(alias string) bool {
	for _, a := range s.Aliases {
		if dnsname.Equal(a, alias) {
			return true
		}
	}
	return false
}

// Fetch reads the distribution's current configuration. API errors are
// returned unwrapped so callers can classify them.
func Fetch(ctx context.Context, client API, id string) (Snapshot, error) {
	resp, err := client.GetDistribution(ctx, &cloudfront.GetDistributionInput{
		Id: aws.String(id),
	})
	if err != nil {
		return Snapshot{}, err
	}
	if resp.Distribution == nil {
		return Snapshot{}, fmt.Errorf("distribution %s: empty response", id)
	}

	var snap Snapshot
	dist := resp.Distribution
	if dist.DomainName != nil {
		snap.CanonicalDomain = dnsname.Normalize(*dist.DomainName)
	}
	if cfg := dist.DistributionConfig; cfg != nil {
		if cfg.Aliases != nil {
			snap.Aliases = cfg.Aliases.Items
		}
		if cfg.IsIPV6Enabled != nil {
			snap.IPv6Enabled = *cfg.IsIPV6Enabled
		}
	}
	return snap, nil
}
