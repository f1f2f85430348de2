// SPDX-License-Identifier: MPL-2.0

package cordova

import (
	"context"
	"fmt"
	"time"
)

// RetryWithBackoff calls op up to maxAttempts times, sleeping baseBackoff
// before the second attempt and doubling the delay after that. The wait is
// cut short when ctx is done.
//
// op returns (retry, err). A nil err ends the loop successfully; a non-nil
// err with retry false is returned as is. After the last attempt the final
// error is returned.
func RetryWithBackoff(
	ctx context.Context,
	maxAttempts int,
	baseBackoff time.Duration,
	op func(attempt int) (retry bool, err error),
) error {
	var lastErr error
	for attempt := range max(maxAttempts, 1) {
		if attempt > 0 {
			timer := time.NewTimer(baseBackoff << (attempt - 1))
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("retry aborted after %d attempt(s): %w", attempt, ctx.Err())
			case <-timer.C:
			}
		}

		retry, err := op(attempt)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return lastErr
}
