// Package kube is ktail's cluster inventory and streaming provider: it
// resolves namespaces, pods, and deployments, opens follow-mode log streams,
// and fetches the data behind the describe report.
package kube

import (
	"fmt"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/charliek/ktail/internal/domain"
)

// Client wraps the Kubernetes API access ktail needs.
type Client struct {
	clientset        kubernetes.Interface
	defaultNamespace string
}

// NewClient builds a client from the usual kubeconfig resolution order
// (explicit path, KUBECONFIG, ~/.kube/config). Connection setup failures are
// fatal preconditions; nothing is retried.
func NewClient(kubeconfig string) (*Client, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		rules.ExplicitPath = kubeconfig
	}
	loader := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{})

	namespace, _, err := loader.Namespace()
	if err != nil || namespace == "" {
		namespace = "default"
	}

	restConfig, err := loader.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: loading kubeconfig: %v", domain.ErrClusterUnreachable, err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: building clientset: %v", domain.ErrClusterUnreachable, err)
	}

	return &Client{clientset: clientset, defaultNamespace: namespace}, nil
}

// NewClientForTesting wraps an existing clientset; used with the fake
// clientset in tests.
func NewClientForTesting(clientset kubernetes.Interface, defaultNamespace string) *Client {
	return &Client{clientset: clientset, defaultNamespace: defaultNamespace}
}

// DefaultNamespace returns the namespace of the current kubeconfig context.
func (c *Client) DefaultNamespace() string {
	return c.defaultNamespace
}
