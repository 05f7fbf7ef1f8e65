// Command jsonmend repairs almost-JSON from files or stdin, and can
// serve the repair API over HTTP.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jsonmend/jsonmend/pkg/ginjsonmend"
	"github.com/jsonmend/jsonmend/pkg/jsonmend"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jsonmend",
		Short:         "Repair almost-JSON into valid JSON",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRepairCmd(), newMinifyCmd(), newFormatCmd(), newServeCmd())
	return root
}

// readInput reads the file named by args[0], or stdin when no file
// (or "-") is given.
func readInput(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newRepairCmd() *cobra.Command {
	var (
		recoverTruncation bool
		keepPrefix        bool
		quiet             bool
	)
	cmd := &cobra.Command{
		Use:   "repair [file]",
		Short: "Repair input and print the full result report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			var opts []jsonmend.Option
			if recoverTruncation {
				opts = append(opts, jsonmend.WithTruncationRecovery())
			}
			if keepPrefix {
				opts = append(opts, jsonmend.WithPrefixPolicy(jsonmend.PrefixKeep))
			}
			res := jsonmend.Repair(input, opts...)
			if quiet {
				if !res.Success {
					return fmt.Errorf("repair failed: %s", res.Errors[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.Formatted)
				return nil
			}
			report, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(report))
			if !res.Success {
				return fmt.Errorf("repair failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&recoverTruncation, "recover-truncation", false,
		"close truncated structures when parsing fails")
	cmd.Flags().BoolVar(&keepPrefix, "keep-prefix", false,
		"keep labels of embedded values under _prefix/_data")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"print only the repaired JSON")
	return cmd
}

func newMinifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "minify [file]",
		Short: "Repair input and print it without whitespace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), jsonmend.Minify(input))
			return nil
		},
	}
}

func newFormatCmd() *cobra.Command {
	var indent int
	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Repair input and print it indented",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), jsonmend.Format(input, indent))
			return nil
		},
	}
	cmd.Flags().IntVar(&indent, "indent", 2, "indent width in spaces")
	return cmd
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the repair API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer log.Sync()

			gin.SetMode(gin.ReleaseMode)
			router := gin.New()
			router.Use(gin.Recovery(), ginjsonmend.RequestLogger(log))
			srv := ginjsonmend.New(ginjsonmend.WithLogger(log))
			srv.Register(router.Group("/api"))

			log.Info("listening", zap.String("addr", addr))
			return router.Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
