// Package zone writes the Route 53 side of the cutover: alias records
// pointing the migrated name at the new distribution.
package zone

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
)

// CloudFrontAliasZoneID is the well-known hosted zone id Route 53
// requires as the alias target zone for any CloudFront distribution.
// It is the same for every distribution and is not the caller's own
// hosted zone.
const CloudFrontAliasZoneID = "Z2FDTNDATAQYW2"

// API abstracts the Route 53 record change submission.
type API interface {
	ChangeResourceRecordSets(ctx context.Context, params *route53.ChangeResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ChangeResourceRecordSetsOutput, error)
}

// Decision says which records to write once the swap has been observed:
// the record name, the CloudFront domain it should resolve to, and
// whether the distribution answers over IPv6.
type Decision struct {
	Alias  string
	Target string
	IPv6   bool
}

// RecordTypes returns the record types the decision calls for: always
// an A record, plus an AAAA record when the distribution has IPv6
// enabled.
func (d Decision) RecordTypes() []r53types.RRType {
	if d.IPv6 {
		return []r53types.RRType{r53types.RRTypeA, r53types.RRTypeAaaa}
	}
	return []r53types.RRType{r53types.RRTypeA}
}

// Apply submits one UPSERT per record type as a single change batch and
// returns the record types it wrote. UPSERT creates or overwrites in
// one step, so there is never a moment with no valid record, and
// re-applying the same decision lands in the same end state.
func Apply(ctx context.Context, client API, hostedZoneID string, d Decision) ([]r53types.RRType, error) {
	rrTypes := d.RecordTypes()
	changes := make([]r53types.Change, 0, len(rrTypes))
	for _, rrType := range rrTypes {
		changes = append(changes, r53types.Change{
			Action: r53types.ChangeActionUpsert,
			ResourceRecordSet: &r53types.ResourceRecordSet{
				Name: aws.String(d.Alias),
				Type: rrType,
				AliasTarget: &r53types.AliasTarget{
					HostedZoneId:         aws.String(CloudFrontAliasZoneID),
					DNSName:              aws.String(d.Target),
					EvaluateTargetHealth: false,
				},
			},
		})
	}

	_, err := client.ChangeResourceRecordSets(ctx, &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(hostedZoneID),
		ChangeBatch: &r53types.ChangeBatch{
			Comment: aws.String(fmt.Sprintf("cfswap: point %s at %s", d.Alias, d.Target)),
			Changes: changes,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("changing record sets in zone %s: %w", hostedZoneID, err)
	}
	return rrTypes, nil
}
