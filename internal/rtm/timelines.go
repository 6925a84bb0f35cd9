package rtm

import (
	"context"
	"encoding/json"
	"fmt"
)

// timelineID returns the session's timeline, creating one on first use.
// Every mutating call must carry a timeline; one per auth session is enough,
// so it is cached until the token changes.
func (c *Client) timelineID(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.timeline
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	rsp, err := c.call(ctx, "rtm.timelines.create", nil)
	if err != nil {
		return "", err
	}

	var out struct {
		Timeline string `json:"timeline"`
	}
	if err := json.Unmarshal(rsp, &out); err != nil {
		return "", fmt.Errorf("decode timeline: %w", err)
	}
	if out.Timeline == "" {
		return "", fmt.Errorf("service returned empty timeline")
	}

	c.mu.Lock()
	c.timeline = out.Timeline
	c.mu.Unlock()
	return out.Timeline, nil
}
