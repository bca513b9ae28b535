// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

import (
	"context"
	"log/slog"
	"time"
)

// retryWithBackoff calls embed until it succeeds, maxAttempts is used up or
// ctx ends. The wait starts at baseDelay and doubles after each failure. The
// last embedding error is returned when every attempt fails.
func retryWithBackoff(ctx context.Context, logger *slog.Logger, maxAttempts int, baseDelay time.Duration, embed func() error) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}

	delay := baseDelay
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if lastErr = embed(); lastErr == nil {
			if attempt > 1 {
				logger.Info("embedding batch recovered", "attempt", attempt)
			}
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		logger.Debug("embedding batch failed, backing off", "attempt", attempt, "max_attempts", maxAttempts, "delay", delay, "err", lastErr)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	logger.Warn("embedding batch gave up", "attempts", maxAttempts, "err", lastErr)
	return lastErr
}
