package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"linesep/common"
	"linesep/core/ml"
	"linesep/core/vector"
)

var flags *pflag.FlagSet

var (
	cfgPathFlag      string
	epsilonFlag      float64
	strictFlag       bool
	maxDimensionFlag int
	logLevelFlag     string
)

func init() {
	resetFlags()
}

// Explicitly define a method to facilitate tests
func resetFlags() {
	flags = &pflag.FlagSet{}

	flags.StringVarP(&cfgPathFlag, "config", "c", "",
		"config file path, default linesep_config.yaml in $LINESEP_CFG_PATH or the working directory")
	flags.Float64VarP(&epsilonFlag, "epsilon", "e", ml.DefaultEpsilon,
		"smallest inner product classified as 1")
	flags.BoolVar(&strictFlag, "strict", false,
		"fail on malformed numbers instead of reading them as 0")
	flags.IntVar(&maxDimensionFlag, "max-dimension", vector.DefaultMaxDimension,
		"largest accepted vector dimension")
	flags.StringVar(&logLevelFlag, "log-level", "WARN",
		"log level, one of DEBUG, INFO, WARN, ERROR (logs go to stderr)")
}

func attachFlags(cmd *cobra.Command, names []string) {
	cmdFlags := cmd.Flags()
	for _, name := range names {
		if flag := flags.Lookup(name); flag != nil {
			cmdFlags.AddFlag(flag)
		} else {
			panic(fmt.Errorf("Could not find flag '%s' to attach to command '%s'", name, cmd.Name()))
		}
	}
}

var commonFlags = []string{
	"config",
	"epsilon",
	"strict",
	"max-dimension",
	"log-level",
}

func newMainCmd() *cobra.Command {
	mainCmd := &cobra.Command{
		Use:   "linesep",
		Short: "single-pass perceptron linear separator",
	}
	mainCmd.AddCommand(classifyCMD())
	mainCmd.AddCommand(trainCMD())
	return mainCmd
}

func main() {
	err := newMainCmd().Execute()
	common.SyncAll()
	if err != nil {
		os.Exit(1)
	}
}
