package labdex

import (
	"context"
	"fmt"
)

// Ask answers a question from the project's documents. Model failures never
// surface as errors: the answer is degraded to a fallback text instead.
func (c *Client) Ask(ctx context.Context, query, projectID string) (Answer, error) {
	res, err := c.retrieval.Ask(ctx, query, projectID)
	if err != nil {
		return Answer{}, fmt.Errorf("ask: %w", err)
	}
	return Answer{
		Text:     res.Answer.Text,
		Sources:  res.SourceNames(),
		Degraded: res.Answer.Degraded,
		Reason:   res.Answer.Reason,
	}, nil
}
