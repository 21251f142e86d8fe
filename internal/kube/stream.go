package kube

import (
	"context"
	"fmt"
	"io"
	"strings"

	corev1 "k8s.io/api/core/v1"

	"github.com/charliek/ktail/internal/domain"
)

// OpenLineStream opens a follow-mode log stream for one target. The returned
// reader yields log lines until the container stops producing them; the
// caller owns closing it. An open failure means the target is skipped, not
// that the session fails.
func (c *Client) OpenLineStream(ctx context.Context, target domain.Target) (io.ReadCloser, error) {
	namespace, pod, err := splitSourceID(target.SourceID)
	if err != nil {
		return nil, err
	}

	opts := &corev1.PodLogOptions{
		Container: target.Container,
		Follow:    true,
		Previous:  target.Previous,
		TailLines: target.TailLines,
	}

	stream, err := c.clientset.CoreV1().Pods(namespace).GetLogs(pod, opts).Stream(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening log stream for %s: %w", target, err)
	}
	return stream, nil
}

// splitSourceID parses a "namespace/pod" source identifier.
func splitSourceID(sourceID string) (namespace, pod string, err error) {
	namespace, pod, ok := strings.Cut(sourceID, "/")
	if !ok || namespace == "" || pod == "" {
		return "", "", fmt.Errorf("malformed source id %q", sourceID)
	}
	return namespace, pod, nil
}
