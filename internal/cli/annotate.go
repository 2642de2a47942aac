package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ndexbio/indranet/internal/model"
	"github.com/ndexbio/indranet/internal/ndex"
	"github.com/ndexbio/indranet/internal/pipeline"
	"github.com/ndexbio/indranet/internal/worker"
)

var (
	curationsFile   string
	cacheDir        string
	noCache         bool
	netPrefix       string
	removeOrigEdges bool
	sourceValue     string
	maxNetworkSize  int
	saveDir         string
	saveToServer    bool
	visibility      string
	indexLevel      string
	disableShowcase bool
	concurrency     int
	runTimeout      time.Duration
	llmEnabled      bool
	llmModel        string
)

// annotateCmd represents the annotate command
var annotateCmd = &cobra.Command{
	Use:   "annotate <input>",
	Short: "Annotate one or more networks with INDRA statements",
	Long: `Annotate retrieves INDRA statements for every node pair of the
input network(s), filters them, and adds evidence-linked edges.

Input is either a CX file or a text file listing NDEx network UUIDs one
per line. NDEx credentials come from the config file or INDRANET_*
environment variables.

Example:
  indranet annotate network.cx --save-dir ./out
  indranet annotate uuids.txt --curations curations.json --save-to-server
  indranet annotate network.cx --cache-dir ~/.indranet/cache --llm`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().StringVar(&curationsFile, "curations", "", "INDRA curations JSON file")
	annotateCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for cached INDRA responses (reused on reruns)")
	annotateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching of INDRA responses")
	annotateCmd.Flags().StringVar(&netPrefix, "netprefix", "INDRA annotated - ", "text prepended to annotated network names")
	annotateCmd.Flags().BoolVar(&removeOrigEdges, "remove-orig-edges", false, "remove all original edges before annotating")
	annotateCmd.Flags().StringVar(&sourceValue, "source-value", "", "stamp this edge source value on pre-existing edges")
	annotateCmd.Flags().IntVar(&maxNetworkSize, "max-network-size", 100, "skip networks with more nodes than this")
	annotateCmd.Flags().StringVar(&saveDir, "save-dir", "", "write annotated networks as CX files to this directory")
	annotateCmd.Flags().BoolVar(&saveToServer, "save-to-server", false, "save annotated networks to the configured NDEx server")
	annotateCmd.Flags().StringVar(&visibility, "visibility", "PUBLIC", "visibility of saved networks (PUBLIC or PRIVATE)")
	annotateCmd.Flags().StringVar(&indexLevel, "index-level", "all", "index level of saved networks (none, meta, all)")
	annotateCmd.Flags().BoolVar(&disableShowcase, "disable-showcase", false, "do not showcase saved networks")
	annotateCmd.Flags().IntVar(&concurrency, "concurrency", 2, "number of networks annotated in parallel")
	annotateCmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Minute, "overall run timeout")
	annotateCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate a plain-language summary per network (requires OPENAI_API_KEY)")
	annotateCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "model for the summary")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := buildConfig()
	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	inputs, err := worker.ReadInputs(args[0])
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	needsServer := saveToServer
	for _, in := range inputs {
		if in.UUID != "" {
			needsServer = true
		}
	}
	var client *ndex.Client
	if needsServer {
		if cfg.NDEx.Server == "" {
			return fmt.Errorf("NDEx server not configured; set ndex.server in the config file or INDRANET_NDEX_SERVER")
		}
		client = ndex.NewClient(cfg.NDEx.Server, cfg.NDEx.Username, cfg.NDEx.Password,
			cfg.NDEx.Timeout, cfg.Indra.UserAgent)
	}
	limiter := worker.NewLimiter(2, 2)

	if saveDir != "" {
		if err := os.MkdirAll(saveDir, 0755); err != nil {
			return fmt.Errorf("create save directory: %w", err)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Annotating %d network(s) with %d worker(s)\n", len(inputs), concurrency)
	}

	run := func(ctx context.Context, input worker.NetworkInput) *worker.AnnotateResult {
		res := &worker.AnnotateResult{Input: input}

		net, err := loadNetwork(ctx, client, limiter, cfg.NDEx.Server, input)
		if err != nil {
			res.Error = err
			return res
		}

		out, err := p.AnnotateNetwork(ctx, net, input.ID)
		if err != nil {
			res.Error = err
			return res
		}
		res.Summary = out.Summary

		if out.LLMSummary != "" {
			fmt.Fprintf(os.Stderr, "Summary for %s:\n%s\n\n", net.Name(), out.LLMSummary)
		}

		if saveDir != "" {
			path := filepath.Join(saveDir, input.ID+".cx")
			if err := net.SaveFile(path); err != nil {
				res.Error = err
				return res
			}
			res.SavedPath = path
		}
		if saveToServer {
			uuid, err := client.SaveNetwork(ctx, net)
			if err != nil {
				res.Error = fmt.Errorf("save to server: %w", err)
				return res
			}
			if err := client.SetSystemProperties(ctx, uuid, visibility, indexLevel, !disableShowcase); err != nil {
				res.Error = fmt.Errorf("set network properties: %w", err)
				return res
			}
			res.SavedUUID = uuid
		}
		return res
	}

	results := worker.ProcessInputs(ctx, inputs, concurrency, run)
	return report(results)
}

// buildConfig layers flags over the viper-backed configuration.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("indra.endpoint"); v != "" {
		cfg.Indra.Endpoint = v
	}
	if v := viper.GetString("ndex.server"); v != "" {
		cfg.NDEx.Server = v
	}
	cfg.NDEx.Username = viper.GetString("ndex.username")
	cfg.NDEx.Password = viper.GetString("ndex.password")

	cfg.Annotate.CurationsFile = curationsFile
	cfg.Annotate.NetPrefix = netPrefix
	cfg.Annotate.RemoveOrigEdges = removeOrigEdges
	cfg.Annotate.SourceValue = sourceValue
	cfg.Annotate.MaxNetworkSize = maxNetworkSize
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Concurrency.Workers = concurrency
	cfg.Output.SaveDir = saveDir
	cfg.Output.SaveToServer = saveToServer
	cfg.Output.Visibility = visibility
	cfg.Output.IndexLevel = indexLevel
	cfg.Output.DisableShowcase = disableShowcase
	cfg.Output.Verbose = verbose
	return cfg
}

func loadNetwork(ctx context.Context, client *ndex.Client, limiter *worker.Limiter, server string, input worker.NetworkInput) (*ndex.Network, error) {
	if input.Path != "" {
		return ndex.LoadFile(input.Path)
	}
	if client == nil {
		return nil, fmt.Errorf("no NDEx client configured for network %s", input.UUID)
	}
	if err := limiter.Wait(ctx, "https://"+server); err != nil {
		return nil, err
	}
	return client.GetNetwork(ctx, input.UUID)
}

// report prints per-network outcomes and returns an error when every
// network failed.
func report(results []*worker.AnnotateResult) error {
	succeeded := 0
	for _, r := range results {
		if r.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Input.ID, r.Error)
			continue
		}
		succeeded++
		s := r.Summary
		if s.EdgesAdded == 0 {
			fmt.Fprintf(os.Stderr, "✓ %s: no annotations produced\n", r.Input.ID)
		} else {
			fmt.Fprintf(os.Stderr, "✓ %s: %d edges from %d statements (%d kept)\n",
				r.Input.ID, s.EdgesAdded, s.StatementsSeen, s.StatementsKept)
		}
		if verbose {
			for stage, n := range s.RemovedByStage {
				fmt.Fprintf(os.Stderr, "    filtered %d by %s\n", n, stage)
			}
			for _, w := range s.Warnings {
				fmt.Fprintf(os.Stderr, "    warning: %s\n", w)
			}
			if r.SavedPath != "" {
				fmt.Fprintf(os.Stderr, "    wrote %s\n", r.SavedPath)
			}
			if r.SavedUUID != "" {
				fmt.Fprintf(os.Stderr, "    saved as %s\n", r.SavedUUID)
			}
		}
	}
	if succeeded == 0 && len(results) > 0 {
		return fmt.Errorf("all %d network(s) failed", len(results))
	}
	return nil
}
