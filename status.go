/*
 * Copyright 2026 Kasabi SDK Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package kasabi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// StatusApplied is the status of an update that the service has applied.
const StatusApplied = "applied"

// UpdateStatus is the decoded body of an update status resource.
type UpdateStatus struct {
	// Status is e.g. "scheduled", "pending" or "applied".
	Status string `json:"status"`
}

// Applied returns true if the update has been applied.
func (s *UpdateStatus) Applied() bool {
	return s.Status == StatusApplied
}

func (c *Client) fetchStatus(ctx context.Context, handle StatusHandle) (*Response, error) {
	u, err := url.Parse(string(handle))
	if err != nil {
		return nil, fmt.Errorf("%w: bad status handle %q: %v", ErrInvalidArgument, handle, err)
	}
	resp, err := c.get(ctx, "check status", u)
	if err != nil {
		return nil, err
	}
	if err := checkStatus2xx("check status", resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CheckStatus fetches the status resource behind handle.
func (c *Client) CheckStatus(ctx context.Context, handle StatusHandle) (*UpdateStatus, error) {
	resp, err := c.fetchStatus(ctx, handle)
	if err != nil {
		return nil, err
	}
	var status UpdateStatus
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		return nil, &Error{Kind: ErrFormat, Op: "check status", Response: resp, Err: err}
	}
	return &status, nil
}

// IsApplied fetches the status of the most recent update once and reports
// whether it has been applied.
//
// Any status other than "applied", including a missing status or a body that
// is not JSON, reports false without an error. Errors are returned only when
// the status could not be fetched.
func (c *Client) IsApplied(ctx context.Context) (bool, error) {
	handle, ok := c.LastStatusHandle()
	if !ok {
		return false, ErrNoStatusHandle
	}
	resp, err := c.fetchStatus(ctx, handle)
	if err != nil {
		return false, err
	}
	var status UpdateStatus
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		return false, nil
	}
	return status.Applied(), nil
}

// WaitUntilApplied polls the status of the most recent update until it has
// been applied.
//
// The delay between polls starts at 5ms and doubles up to 1s. It returns the
// first error from a poll, or ctx.Err() when ctx is done first.
func (c *Client) WaitUntilApplied(ctx context.Context) error {
	tick := 5 * time.Millisecond
	maxTick := 1 * time.Second

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			applied, err := c.IsApplied(ctx)
			if err != nil {
				return err
			}
			if applied {
				return nil
			}
		}

		if tick < maxTick {
			tick = min(tick*2, maxTick)
			ticker.Reset(tick)
		}
	}
}
