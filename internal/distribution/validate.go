package distribution

import (
	"context"
	"fmt"

	"github.com/hthennin/cfswap/internal/dnsname"
)

// DomainMismatchError means the caller-supplied CloudFront domain does
// not belong to the distribution they named. Acting anyway would point
// DNS at the wrong distribution, so this is fatal.
type DomainMismatchError struct {
	DistributionID string
	Requested      string
	Actual         string
}

func (e *DomainMismatchError) Error() string {
	return fmt.Sprintf("distribution %s serves %s, not %s", e.DistributionID, e.Actual, e.Requested)
}

// Validate reads the distribution once and confirms that domain is its
// canonical CloudFront domain name. It runs exactly once, before any
// polling starts.
func Validate(ctx context.Context, client API, id, domain string) (Snapshot, error) {
	snap, err := Fetch(ctx, client, id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("describing distribution %s: %w", id, err)
	}
	if !dnsname.Equal(snap.CanonicalDomain, domain) {
		return Snapshot{}, &DomainMismatchError{
			DistributionID: id,
			Requested:      dnsname.Normalize(domain),
			Actual:         snap.CanonicalDomain,
		}
	}
	return snap, nil
}
