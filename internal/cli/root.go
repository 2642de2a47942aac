package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "indranet",
	Short: "indranet - annotate interaction networks with INDRA evidence",
	Long: `indranet annotates a biological interaction network with
evidence-backed relationship statements from the INDRA knowledge
assembly service.

For each pair of network nodes it retrieves candidate statements,
filters out low-confidence and spurious ones, merges the survivors into
a single evidence-linked annotation, and writes the result onto the
network as new edges. Annotated networks can be saved as CX files or
uploaded to an NDEx server.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("indranet v0.2.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.indranet/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.indranet")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables matching INDRANET_* override the file, with
	// dots in config keys mapped to underscores (ndex.server becomes
	// INDRANET_NDEX_SERVER).
	viper.SetEnvPrefix("INDRANET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
