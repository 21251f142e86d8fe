package kube

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/charliek/ktail/internal/constants"
	"github.com/charliek/ktail/internal/domain"
)

// PodInfo describes one pod available for tailing.
type PodInfo struct {
	Name       string
	Namespace  string
	Containers []string
}

// SourceID returns the "namespace/pod" identifier used to tag log messages.
func (p PodInfo) SourceID() string {
	return p.Namespace + "/" + p.Name
}

// Title returns the pick-list label for the pod.
func (p PodInfo) Title() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Namespace)
}

// Target builds the descriptor a stream worker consumes.
func (p PodInfo) Target(container string, previous bool, tailLines *int64) domain.Target {
	return domain.Target{
		SourceID:  p.SourceID(),
		Container: container,
		Previous:  previous,
		TailLines: tailLines,
	}
}

// ListNamespaces returns all namespace names, sorted.
func (c *Client) ListNamespaces(ctx context.Context) ([]string, error) {
	list, err := c.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: listing namespaces: %v", domain.ErrClusterUnreachable, err)
	}

	names := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		names = append(names, ns.Name)
	}
	sort.Strings(names)
	return names, nil
}

// ListPods lists pods across the given namespaces in parallel, capped at
// PodListConcurrency in-flight calls. Any single failure fails the whole
// lookup: partial target lists are never silently accepted.
func (c *Client) ListPods(ctx context.Context, namespaces []string) ([]PodInfo, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.PodListConcurrency)

	results := make([][]PodInfo, len(namespaces))
	for i, namespace := range namespaces {
		g.Go(func() error {
			list, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
			if err != nil {
				return fmt.Errorf("%w: listing pods in %s: %v", domain.ErrClusterUnreachable, namespace, err)
			}
			pods := make([]PodInfo, 0, len(list.Items))
			for _, p := range list.Items {
				containers := make([]string, 0, len(p.Spec.Containers))
				for _, container := range p.Spec.Containers {
					containers = append(containers, container.Name)
				}
				pods = append(pods, PodInfo{
					Name:       p.Name,
					Namespace:  namespace,
					Containers: containers,
				})
			}
			results[i] = pods
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []PodInfo
	for _, pods := range results {
		all = append(all, pods...)
	}
	return all, nil
}

// ListDeployments returns deployment names across the given namespaces.
func (c *Client) ListDeployments(ctx context.Context, namespaces []string) ([]string, error) {
	var all []string
	for _, namespace := range namespaces {
		list, err := c.clientset.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
		if err != nil {
			return nil, fmt.Errorf("%w: listing deployments in %s: %v", domain.ErrClusterUnreachable, namespace, err)
		}
		for _, d := range list.Items {
			all = append(all, d.Name)
		}
	}
	return all, nil
}

// FilterPodsByDeployments keeps pods whose name is prefixed by one of the
// deployment names. Pod names for deployment-managed pods follow
// "<deployment>-<replicaset hash>-<pod hash>".
func FilterPodsByDeployments(pods []PodInfo, deployments []string) []PodInfo {
	if len(deployments) == 0 {
		return pods
	}
	var kept []PodInfo
	for _, pod := range pods {
		for _, deployment := range deployments {
			if strings.HasPrefix(pod.Name, deployment+"-") {
				kept = append(kept, pod)
				break
			}
		}
	}
	return kept
}
