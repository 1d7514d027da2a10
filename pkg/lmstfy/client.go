package lmstfy

import (
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"
)

const defaultTries = 3

// Client thin wrapper over the lmstfy HTTP client, shared by the API
// publisher and the worker subscriber.
type Client struct {
	cli       *client.LmstfyClient
	namespace string
}

// NewClient creates a client bound to one namespace
func NewClient(host string, port int, namespace string, token string) *Client {
	return &Client{
		cli:       client.NewLmstfyClient(host, port, namespace, token),
		namespace: namespace,
	}
}

// Consume pulls one job; nil job means the wait timed out
func (c *Client) Consume(queue string, timeout time.Duration, ttr time.Duration) (*client.Job, error) {
	job, err := c.cli.Consume(queue, uint32(ttr.Seconds()), uint32(timeout.Seconds()))
	if err != nil {
		return nil, fmt.Errorf("lmstfy consume failed: %w", err)
	}
	return job, nil
}

// Ack deletes a finished job
func (c *Client) Ack(queue string, jobID string) error {
	if err := c.cli.Ack(queue, jobID); err != nil {
		return fmt.Errorf("lmstfy ack failed: %w", err)
	}
	return nil
}

// Publish enqueues data; ttl and delay are in seconds
func (c *Client) Publish(queue string, data []byte, ttl, delay uint32) (string, error) {
	jobID, err := c.cli.Publish(queue, data, ttl, defaultTries, delay)
	if err != nil {
		return "", fmt.Errorf("lmstfy publish failed: %w", err)
	}
	return jobID, nil
}
