// Package migrate ties the pieces of a cutover together: validate the
// target distribution, wait for the CNAME swap, then update DNS.
package migrate

import (
	"fmt"

	"github.com/hthennin/cfswap/internal/dnsname"
)

// Request is the immutable input for one cutover run. Build it with
// NewRequest; the domain fields come back normalized.
type Request struct {
	DistributionID string
	HostedZoneID   string
	Domain         string // canonical CloudFront domain of the new distribution
	Alias          string // alternate domain name being moved
}

// InvalidParameterError reports a missing or malformed input parameter.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// NewRequest checks all four parameters and returns a request with the
// domain names normalized. Every field is required.
func NewRequest(distributionID, hostedZoneID, domain, alias string) (Request, error) {
	params := []struct {
		name, value string
	}{
		{"distribution-id", distributionID},
		{"hosted-zone-id", hostedZoneID},
		{"cloudfront-domain", domain},
		{"alias", alias},
	}
	for _, p := range params {
		if p.value == "" {
			return Request{}, &InvalidParameterError{Param: p.name, Reason: "must not be empty"}
		}
	}
	if !dnsname.Valid(domain) {
		return Request{}, &InvalidParameterError{Param: "cloudfront-domain", Reason: fmt.Sprintf("%q is not a valid DNS name", domain)}
	}
	if !dnsname.Valid(alias) {
		return Request{}, &InvalidParameterError{Param: "alias", Reason: fmt.Sprintf("%q is not a valid DNS name", alias)}
	}

	return Request{
		DistributionID: distributionID,
		HostedZoneID:   hostedZoneID,
		Domain:         dnsname.Normalize(domain),
		Alias:          dnsname.Normalize(alias),
	}, nil
}
