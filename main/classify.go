package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"linesep/common"
	"linesep/core/config"
	"linesep/runner"
)

func newRunner(cmd *cobra.Command) (*runner.Runner, error) {
	lc, err := config.InitLocalConfig(cmd)
	if err != nil {
		return nil, err
	}
	r := &runner.Runner{}
	if err := r.Init(lc); err != nil {
		return nil, err
	}
	return r, nil
}

func classify(cmd *cobra.Command, path string) error {
	r, err := newRunner(cmd)
	if err != nil {
		return err
	}
	in, err := runner.OpenInput(path)
	if err != nil {
		return err
	}
	defer in.Close()

	common.GetLogger(common.MODULE_CLI).Debugf("classify %s", path)
	return r.Run(in, cmd.OutOrStdout())
}

func classifyCMD() *cobra.Command {
	classifyCmd := &cobra.Command{
		Use:   "classify <input file>",
		Short: "train on the leading vectors and label the rest",
		Long: "Read the dimension and training count header, train a separator on the " +
			"training vectors and print 1 or -1 for every vector after them. Use - for stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return classify(cmd, args[0])
		},
	}
	attachFlags(classifyCmd, commonFlags)
	return classifyCmd
}

func train(cmd *cobra.Command, path string) error {
	r, err := newRunner(cmd)
	if err != nil {
		return err
	}
	in, err := runner.OpenInput(path)
	if err != nil {
		return err
	}
	defer in.Close()

	sep, stats, err := r.Separate(in)
	if err != nil {
		return err
	}
	if stats.Truncated {
		common.GetLogger(common.MODULE_CLI).Warnf("training block of %s is shorter than announced", path)
	}
	return writeSeparator(cmd.OutOrStdout(), sep.Coordinates())
}

func writeSeparator(w io.Writer, coords []float64) error {
	parts := make([]string, len(coords))
	for i, x := range coords {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, ","))
	return err
}

func trainCMD() *cobra.Command {
	trainCmd := &cobra.Command{
		Use:   "train <input file>",
		Short: "print the separator learned from the training vectors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return train(cmd, args[0])
		},
	}
	attachFlags(trainCmd, commonFlags)
	return trainCmd
}
