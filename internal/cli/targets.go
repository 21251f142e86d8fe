package cli

import (
	"context"
	"fmt"

	"github.com/charliek/ktail/internal/domain"
	"github.com/charliek/ktail/internal/kube"
	"github.com/charliek/ktail/internal/tui"
)

// namespaceInteractive is the sentinel NoOptDefVal for --namespace: the flag
// given without a value means "pick namespaces interactively".
const namespaceInteractive = "*"

// resolveNamespaces maps the --namespace flag to a concrete namespace list:
// absent uses the kubeconfig context default, bare flag prompts, a value is
// taken as-is.
func resolveNamespaces(ctx context.Context, client *kube.Client, flag string) ([]string, error) {
	switch flag {
	case "":
		namespace := client.DefaultNamespace()
		fmt.Printf("Using context namespace: %s\n", namespace)
		return []string{namespace}, nil

	case namespaceInteractive:
		all, err := client.ListNamespaces(ctx)
		if err != nil {
			return nil, err
		}
		picked, err := tui.MultiSelect("Select namespaces:", all)
		if err != nil {
			return nil, err
		}
		if len(picked) == 0 {
			return nil, fmt.Errorf("%w: no namespaces selected", domain.ErrNoTargets)
		}
		namespaces := make([]string, len(picked))
		for i, idx := range picked {
			namespaces[i] = all[idx]
		}
		return namespaces, nil

	default:
		return []string{flag}, nil
	}
}

// pickTargets prompts for pods and resolves each chosen pod to one container.
func pickTargets(pods []kube.PodInfo, containerSelect, previous bool, tailLines *int64) ([]domain.Target, error) {
	labels := make([]string, len(pods))
	for i, pod := range pods {
		labels[i] = pod.Title()
	}

	picked, err := tui.MultiSelect("Select pods to tail:", labels)
	if err != nil {
		return nil, err
	}

	targets := make([]domain.Target, 0, len(picked))
	for _, idx := range picked {
		pod := pods[idx]
		container, err := resolveContainer(pod, containerSelect)
		if err != nil {
			return nil, err
		}
		targets = append(targets, pod.Target(container, previous, tailLines))
	}
	return targets, nil
}

// resolveContainer picks which container of a pod to tail. The prompt only
// appears when asked for and the pod actually has a choice to make.
func resolveContainer(pod kube.PodInfo, containerSelect bool) (string, error) {
	if len(pod.Containers) == 0 {
		return "default", nil
	}
	if containerSelect && len(pod.Containers) > 1 {
		idx, err := tui.Select(fmt.Sprintf("Select container for %s:", pod.Name), pod.Containers)
		if err != nil {
			return "", err
		}
		return pod.Containers[idx], nil
	}
	return pod.Containers[0], nil
}

// tailLines converts the --tail flag to the descriptor form: negative means
// unbounded.
func tailLines(tail int64) *int64 {
	if tail < 0 {
		return nil
	}
	return &tail
}
