package migrate

import (
	"context"
	"fmt"
	"time"

	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/hthennin/cfswap/internal/distribution"
	"github.com/hthennin/cfswap/internal/zone"
)

// Options tunes the polling phase of a run. The zero value uses the
// poller defaults and waits indefinitely.
type Options struct {
	BaseDelay   time.Duration
	MaxJitter   time.Duration
	MaxAttempts int
	Progress    func(attempt int, elapsed time.Duration)
}

// Run executes one cutover: confirm the distribution serves the
// requested CloudFront domain, wait until the alias has been moved onto
// it, then upsert the alias records in the hosted zone. It returns the
// record types that were written.
//
// The validation read doubles as the first look at the alias set, so a
// swap that already happened skips the polling phase entirely. No DNS
// write happens before the alias has been observed on the distribution.
func Run(ctx context.Context, cf distribution.API, dns zone.API, req Request, opts Options) ([]r53types.RRType, error) {
	snap, err := distribution.Validate(ctx, cf, req.DistributionID, req.Domain)
	if err != nil {
		return nil, fmt.Errorf("validating distribution: %w", err)
	}

	if !snap.HasAlias(req.Alias) {
		poller := &distribution.Poller{
			Client:      cf,
			BaseDelay:   opts.BaseDelay,
			MaxJitter:   opts.MaxJitter,
			MaxAttempts: opts.MaxAttempts,
			Progress:    opts.Progress,
		}
		snap, err = poller.AwaitAlias(ctx, req.DistributionID, req.Alias)
		if err != nil {
			return nil, fmt.Errorf("waiting for alias %s: %w", req.Alias, err)
		}
	}

	applied, err := zone.Apply(ctx, dns, req.HostedZoneID, zone.Decision{
		Alias:  req.Alias,
		Target: req.Domain,
		IPv6:   snap.IPv6Enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("updating zone %s: %w", req.HostedZoneID, err)
	}
	return applied, nil
}
