package kube

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/charliek/ktail/internal/constants"
	"github.com/charliek/ktail/internal/domain"
)

// PodReport holds the data behind the one-shot describe view.
type PodReport struct {
	Name        string
	Namespace   string
	Phase       string
	PodIP       string
	CPULimit    string
	MemoryLimit string
	Events      []EventInfo
}

// EventInfo is one recent cluster event involving the pod.
type EventInfo struct {
	Type    string
	Reason  string
	Message string
}

// DescribePod fetches a pod's vital signs plus its most recent events,
// newest first, capped at DescribeEventCount.
func (c *Client) DescribePod(ctx context.Context, namespace, name string) (*PodReport, error) {
	pod, err := c.clientset.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrPodNotFound, namespace, name)
		}
		return nil, fmt.Errorf("%w: fetching pod %s/%s: %v", domain.ErrClusterUnreachable, namespace, name, err)
	}

	report := &PodReport{
		Name:      pod.Name,
		Namespace: namespace,
		Phase:     string(pod.Status.Phase),
		PodIP:     pod.Status.PodIP,
	}

	if len(pod.Spec.Containers) > 0 {
		limits := pod.Spec.Containers[0].Resources.Limits
		if cpu, ok := limits["cpu"]; ok {
			report.CPULimit = cpu.String()
		}
		if mem, ok := limits["memory"]; ok {
			report.MemoryLimit = mem.String()
		}
	}

	events, err := c.clientset.CoreV1().Events(namespace).List(ctx, metav1.ListOptions{
		FieldSelector: "involvedObject.name=" + name,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fetching events for %s/%s: %v", domain.ErrClusterUnreachable, namespace, name, err)
	}

	// Newest first, capped.
	for i := len(events.Items) - 1; i >= 0 && len(report.Events) < constants.DescribeEventCount; i-- {
		e := events.Items[i]
		report.Events = append(report.Events, EventInfo{
			Type:    e.Type,
			Reason:  e.Reason,
			Message: e.Message,
		})
	}

	return report, nil
}
