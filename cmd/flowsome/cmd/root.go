// Package cmd implements the flowsome command line interface.
package cmd

import (
	"fmt"
	"strings"

	"github.com/flowsome/flowsome/config"
	"github.com/flowsome/flowsome/executor"
	"github.com/flowsome/flowsome/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables which configure the CLI, e.g. FLOWSOME_LOG_LEVEL
const EnvPrefix = "FLOWSOME"

// Config holds the settings shared by every command
type Config struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Strategy        string `mapstructure:"strategy"`
	PartitionSize   int    `mapstructure:"partition_size"`
	IgnoreRowErrors bool   `mapstructure:"ignore_row_errors"`
}

type app struct {
	v    *viper.Viper
	conf Config
}

// NewRootCmd builds the flowsome command tree
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var cfgFile string
	root := &cobra.Command{
		Use:           "flowsome",
		Short:         "flowsome runs tabular data pipelines defined in YAML",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cfgFile)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "CLI config file")
	flags.String("log-level", "info", "logging level [trace|debug|info|warn|error]")
	flags.String("log-format", logging.TextFormat, "logging format [text|json]")
	flags.String("strategy", "", "execution strategy [eager|single_pass], overriding the pipeline definition")
	flags.Int("partition-size", 0, "maximum rows per partition, overriding the pipeline definition")
	flags.Bool("ignore-row-errors", false, "log and drop rows which fail to transform, instead of failing")
	for key, flag := range map[string]string{
		"log.level":         "log-level",
		"log.format":        "log-format",
		"strategy":          "strategy",
		"partition_size":    "partition-size",
		"ignore_row_errors": "ignore-row-errors",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(newRunCmd(a), newValidateCmd(a), newExplainCmd(a), newPreviewCmd(a))
	return root
}

func (a *app) init(cfgFile string) error {
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("Unable to read config file: %w", err)
		}
	}
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.Unmarshal(&a.conf); err != nil {
		return err
	}
	return logging.SetLogLevel(a.conf.Log.Level, a.conf.Log.Format)
}

// load reads a pipeline definition, applying the executor settings given on the
// command line or in the environment
func (a *app) load(path string) (*config.Pipeline, *executor.Options, error) {
	def, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	opts, err := def.ExecutorOptions()
	if err != nil {
		return nil, nil, err
	}
	if a.conf.Strategy != "" {
		if opts.Strategy, err = executor.ParseStrategy(a.conf.Strategy); err != nil {
			return nil, nil, err
		}
	}
	if a.conf.PartitionSize > 0 {
		opts.PartitionSize = a.conf.PartitionSize
	}
	if a.conf.IgnoreRowErrors {
		opts.IgnoreRowErrors = true
	}
	return def, opts, nil
}
