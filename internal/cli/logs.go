package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charliek/ktail/internal/config"
	"github.com/charliek/ktail/internal/constants"
	"github.com/charliek/ktail/internal/domain"
	"github.com/charliek/ktail/internal/kube"
	"github.com/charliek/ktail/internal/logs"
	"github.com/charliek/ktail/internal/stream"
	"github.com/charliek/ktail/internal/term"
	"github.com/charliek/ktail/internal/tui"
)

// logs command flags
var (
	logsNamespace       string
	logsContainerSelect bool
	logsInclude         string
	logsExclude         string
	logsPrevious        bool
	logsTail            int64
	logsByDeployment    bool
)

// logsCmd represents the logs command
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Tail logs from multiple containers as one stream",
	Long: `Tail logs from any number of containers at once. Pods are chosen
interactively; while streaming, press / to pause and search recent
history, and q to quit.`,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().StringVarP(&logsNamespace, "namespace", "n", "", "Namespace to tail (bare flag prompts for namespaces)")
	logsCmd.Flags().Lookup("namespace").NoOptDefVal = namespaceInteractive
	logsCmd.Flags().BoolVarP(&logsContainerSelect, "container-select", "c", false, "Prompt for a container when a pod has several")
	logsCmd.Flags().StringVarP(&logsInclude, "filter", "f", "", "Only show lines matching this pattern")
	logsCmd.Flags().StringVarP(&logsExclude, "exclude", "e", "", "Hide lines matching this pattern (wins over --filter)")
	logsCmd.Flags().BoolVarP(&logsPrevious, "previous", "p", false, "Tail logs of the previous container instance")
	logsCmd.Flags().Int64Var(&logsTail, "tail", constants.DefaultTailLines, "Recent lines each stream starts with (-1 for all)")
	logsCmd.Flags().BoolVarP(&logsByDeployment, "deployment", "d", false, "Pre-filter pods by deployment")

	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath, configExplicit())
	if err != nil {
		return err
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	// An invalid pattern must fail before anything touches the cluster.
	filter, err := logs.NewFilter(logsInclude, logsExclude)
	if err != nil {
		return err
	}

	client, err := kube.NewClient(kubeconfig)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	targets, err := selectTargets(ctx, client)
	if err != nil {
		return err
	}

	history := logs.NewHistory(cfg.HistorySize)
	renderer := term.NewRenderer(os.Stdout, term.TerminalFd(os.Stdout))
	keyboard := term.NewKeyboard(os.Stdin)
	session := stream.NewSession(
		stream.Config{ChannelCapacity: cfg.ChannelCapacity, Tick: cfg.Tick()},
		history, filter, renderer, keyboard, tui.SearchPrompt{},
	)

	// Workers are abandoned rather than signalled on quit: cancelling this
	// context unblocks any of their pending sends.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, target := range targets {
		lineStream, err := client.OpenLineStream(ctx, target)
		if err != nil {
			// Reported once; the target is skipped, not fatal.
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", target, err)
			continue
		}
		session.Spawn(ctx, target, lineStream)
	}

	err = session.Run(ctx)
	cancel()
	session.Wait()
	return err
}

// selectTargets runs the interactive selection flow: namespaces, optional
// deployment pre-filter, pods, containers.
func selectTargets(ctx context.Context, client *kube.Client) ([]domain.Target, error) {
	namespaces, err := resolveNamespaces(ctx, client, logsNamespace)
	if err != nil {
		return nil, err
	}

	pods, err := client.ListPods(ctx, namespaces)
	if err != nil {
		return nil, err
	}

	if logsByDeployment {
		deployments, err := client.ListDeployments(ctx, namespaces)
		if err != nil {
			return nil, err
		}
		picked, err := tui.MultiSelect("Select deployments:", deployments)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(picked))
		for i, idx := range picked {
			names[i] = deployments[idx]
		}
		pods = kube.FilterPodsByDeployments(pods, names)
	}

	if len(pods) == 0 {
		return nil, fmt.Errorf("%w: no pods found", domain.ErrNoTargets)
	}

	targets, err := pickTargets(pods, logsContainerSelect, logsPrevious, tailLines(logsTail))
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, domain.ErrNoTargets
	}
	return targets, nil
}
