package distribution

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
)

// retryable reports whether a fetch error is worth retrying on the next
// poll cycle. Throttling and transient connection faults are; a missing
// distribution or denied access will not fix itself.
func retryable(err error) bool {
	var notFound *cftypes.NoSuchDistribution
	if errors.As(err, &notFound) {
		return false
	}
	var denied *cftypes.AccessDenied
	if errors.As(err, &denied) {
		return false
	}

	throttle := retry.ThrottleErrorCode{Codes: retry.DefaultThrottleErrorCodes}
	if throttle.IsErrorThrottle(err) == aws.TrueTernary {
		return true
	}
	conn := retry.RetryableConnectionError{}
	return conn.IsErrorRetryable(err) == aws.TrueTernary
}
