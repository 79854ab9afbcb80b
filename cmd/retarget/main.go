package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/qmuntal/gltf"
	"github.com/spf13/cobra"

	"github.com/motionrig/retarget"
	"github.com/motionrig/retarget/converter"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:           "retarget",
		Short:         "Retarget motion-capture clips onto a Rigify-style rig",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(newApplyCmd(), newFormatsCmd())
	return cmd
}

func newApplyCmd() *cobra.Command {
	var (
		targetPath string
		sourcePath string
		formatName string
		policyPath string
		height     float32
		output     string
	)
	cmd := &cobra.Command{
		Use:   "apply <clip.json>",
		Short: "Retarget a clip onto the target skeleton",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clip, err := loadClip(args[0])
			if err != nil {
				return err
			}
			target, err := loadSkeleton(targetPath)
			if err != nil {
				return err
			}

			source, err := loadSkeleton(sourcePath)
			if err != nil {
				return err
			}

			// The rest skeleton carries the full joint name set, including
			// diagnostic joints the clip may not animate.
			format := retarget.ClassifySkeleton(source)
			if formatName != "" {
				format, err = retarget.ParseFormat(formatName)
				if err != nil {
					return err
				}
			}
			logger.Info("source format", "format", format)

			opts := &retarget.Options{BodyHeight: height, Logger: logger}
			if policyPath != "" {
				policy, err := retarget.LoadPolicy(policyPath)
				if err != nil {
					return err
				}
				opts.Policy = &policy
			}

			ctx, err := retarget.NewContext(target, source, format, opts)
			if err != nil {
				return err
			}
			out, err := ctx.Retarget(clip)
			if err != nil {
				return err
			}
			logger.Info("retargeted", "tracks", len(out.Rotations), "frames", out.FrameCount())

			if output == "" {
				base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				output = base + "_retarget.glb"
			}
			switch ext := strings.ToLower(filepath.Ext(output)); ext {
			case ".glb":
				doc, err := converter.NewClipToGLTFConverter(nil).Convert(target, out)
				if err != nil {
					return err
				}
				return gltf.SaveBinary(doc, output)
			case ".json":
				return saveClipJSON(output, out)
			default:
				return fmt.Errorf("unsupported output format: %s", ext)
			}
		},
	}
	cmd.Flags().StringVarP(&targetPath, "target", "t", "", "target skeleton JSON (required)")
	cmd.Flags().StringVarP(&sourcePath, "source", "s", "", "source rest skeleton JSON (required)")
	cmd.Flags().StringVarP(&formatName, "format", "f", "", "source format (default: classify from joint names)")
	cmd.Flags().StringVarP(&policyPath, "policy", "p", "", "mapping policy YAML")
	cmd.Flags().Float32Var(&height, "height", 0, "performer body height in target units")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (.glb or .json)")
	cmd.MarkFlagRequired("target")
	cmd.MarkFlagRequired("source")
	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported source formats",
		Run: func(cmd *cobra.Command, args []string) {
			for _, f := range retarget.Formats() {
				fmt.Println(f)
			}
		},
	}
}
