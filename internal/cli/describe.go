package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/charliek/ktail/internal/describe"
	"github.com/charliek/ktail/internal/domain"
	"github.com/charliek/ktail/internal/kube"
	"github.com/charliek/ktail/internal/tui"
)

var describeNamespace string

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe [pod]",
	Short: "Show a pod's vital signs and recent events",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDescribe,
}

func init() {
	describeCmd.Flags().StringVarP(&describeNamespace, "namespace", "n", "", "Namespace (bare flag prompts for namespaces)")
	describeCmd.Flags().Lookup("namespace").NoOptDefVal = namespaceInteractive

	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	client, err := kube.NewClient(kubeconfig)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	namespaces, err := resolveNamespaces(ctx, client, describeNamespace)
	if err != nil {
		return err
	}

	var namespace, name string
	if len(args) == 1 {
		namespace, name = namespaces[0], args[0]
	} else {
		pods, err := client.ListPods(ctx, namespaces)
		if err != nil {
			return err
		}
		if len(pods) == 0 {
			return domain.ErrNoTargets
		}
		labels := make([]string, len(pods))
		for i, pod := range pods {
			labels[i] = pod.Title()
		}
		idx, err := tui.Select("Select pod to describe:", labels)
		if err != nil {
			return err
		}
		namespace, name = pods[idx].Namespace, pods[idx].Name
	}

	report, err := client.DescribePod(ctx, namespace, name)
	if err != nil {
		return err
	}

	describe.Render(os.Stdout, report)
	return nil
}
