package convert

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"

	"icogen/cli/command"
	"icogen/pkg/config/configfile"
	"icogen/pkg/iconconv"
	"icogen/pkg/output"
	"icogen/pkg/validator"

	"github.com/docker/go-units"
	"github.com/morikuni/aec"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Exit statuses, beyond 0 for success.
const (
	StatusSourceNotFound = 1
	StatusDecodeFailed   = 2
	StatusEncodeFailed   = 3
	StatusInvalidOptions = 125
	StatusCancelled      = 130
)

type convertOptions struct {
	output      string
	sizes       []int
	filter      string
	pad         bool
	largestOnly bool
	tempDir     string
	syso        string
	arch        string
	verify      bool
}

// NewConvertCommand returns the icogen root command, which converts one
// image into an icon.
func NewConvertCommand(icogenCli command.Cli) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "icogen [OPTIONS] [SOURCE]",
		Short: "Convert an image into a multi-resolution Windows icon",
		Long: "Convert an image into a multi-resolution Windows icon.\n\n" +
			"SOURCE defaults to " + iconconv.DefaultSource + " and the icon is written to " +
			iconconv.DefaultOutput + " unless --output or icogen.json say otherwise.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), icogenCli, opts, cmd.Flags(), args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", iconconv.DefaultOutput, "Icon file to write")
	flags.IntSliceVar(&opts.sizes, "sizes", iconconv.DefaultSizes(), "Edge lengths to embed, in pixels (1-256)")
	flags.StringVar(&opts.filter, "filter", iconconv.DefaultFilter, "Resampling filter ("+strings.Join(iconconv.Filters(), ", ")+")")
	flags.BoolVar(&opts.pad, "pad", false, "Keep the aspect ratio, padding with transparency")
	flags.BoolVar(&opts.largestOnly, "largest-only", false, "Embed only the largest size")
	flags.StringVar(&opts.tempDir, "temp-dir", "", "Directory for the temporary bitmap (default: system temp dir)")
	flags.StringVar(&opts.syso, "syso", "", "Also write a Windows resource object with the icon")
	flags.StringVar(&opts.arch, "arch", iconconv.DefaultArch, "Target architecture of the resource object ("+strings.Join(iconconv.Arches(), ", ")+")")
	flags.BoolVar(&opts.verify, "verify", false, "Read the written icon back and list its images")

	return cmd
}

func runConvert(ctx context.Context, icogenCli command.Cli, opts convertOptions, flags *pflag.FlagSet, args []string) error {
	convOpts := resolveOptions(icogenCli.ConfigFile(), opts, flags, args)

	v, err := validator.NewValidator()
	if err != nil {
		return errors.Wrap(err, "failed to create validator")
	}
	if err := validator.ValidateConversion(validator.Conversion{
		Source: convOpts.Source,
		Output: convOpts.Output,
		Sizes:  convOpts.Sizes,
		Filter: convOpts.Filter,
		Syso:   convOpts.Syso,
		Arch:   convOpts.Arch,
	}, v); err != nil {
		return command.StatusError{Status: err.Error(), StatusCode: StatusInvalidOptions, Cause: err}
	}

	var res *iconconv.Result
	err = icogenCli.Progress().RunWithProgress("Converting "+convOpts.Source, func() error {
		var err error
		res, err = iconconv.Convert(ctx, convOpts)
		return err
	}, icogenCli.Err())
	if err != nil {
		return statusFromError(err)
	}

	out := output.New(icogenCli.Out(), icogenCli.Err())
	out.Prettyln(output.Styled("✔", fmt.Sprintf("Icon written to %s (%s px, %s)",
		res.Output, joinSizes(res.Sizes), units.HumanSize(float64(res.Bytes))), aec.GreenF))
	if res.Syso != "" {
		out.Prettyln(output.Styled("✔", "Resource object written to "+res.Syso, aec.GreenF))
	}
	logrus.WithFields(logrus.Fields{"output": res.Output, "digest": res.Digest}).Debug("conversion complete")

	if opts.verify {
		return verify(icogenCli, res)
	}
	return nil
}

// resolveOptions merges the command line over the config file. Flags only
// win when set explicitly; otherwise the config file value, if any, is used
// before the flag default.
func resolveOptions(cfg *configfile.ConfigFile, opts convertOptions, flags *pflag.FlagSet, args []string) iconconv.Options {
	if cfg == nil {
		cfg = &configfile.ConfigFile{}
	}
	pick := func(name, flagValue, cfgValue string) string {
		if !flags.Changed(name) && cfgValue != "" {
			return cfgValue
		}
		return flagValue
	}

	o := iconconv.Options{
		Source:      cfg.Source,
		Output:      pick("output", opts.output, cfg.Output),
		Sizes:       opts.sizes,
		Filter:      pick("filter", opts.filter, cfg.Filter),
		Pad:         opts.pad || (!flags.Changed("pad") && cfg.Pad),
		LargestOnly: opts.largestOnly || (!flags.Changed("largest-only") && cfg.LargestOnly),
		TempDir:     pick("temp-dir", opts.tempDir, cfg.TempDir),
		Syso:        pick("syso", opts.syso, cfg.Syso),
		Arch:        pick("arch", opts.arch, cfg.Arch),
	}
	if len(args) > 0 {
		o.Source = args[0]
	}
	if o.Source == "" {
		o.Source = iconconv.DefaultSource
	}
	if !flags.Changed("sizes") && len(cfg.Sizes) > 0 {
		o.Sizes = cfg.Sizes
	}
	return o
}

func statusFromError(err error) error {
	var convErr *iconconv.ConversionError
	switch {
	case errors.Is(err, context.Canceled):
		return command.StatusError{Status: "Conversion cancelled", StatusCode: StatusCancelled, Cause: err}
	case !errors.As(err, &convErr):
		return command.StatusError{Status: err.Error(), StatusCode: 1, Cause: err}
	case errors.Is(err, iconconv.ErrSourceNotFound):
		return command.StatusError{Status: "Source image not found: " + convErr.Path, StatusCode: StatusSourceNotFound, Cause: err}
	case errors.Is(err, iconconv.ErrDecode):
		return command.StatusError{Status: fmt.Sprintf("Failed to decode %s: %v", convErr.Path, convErr.Err), StatusCode: StatusDecodeFailed, Cause: err}
	case errors.Is(err, iconconv.ErrInvalidOptions):
		return command.StatusError{Status: err.Error(), StatusCode: StatusInvalidOptions, Cause: err}
	default:
		return command.StatusError{Status: fmt.Sprintf("Failed to write %s: %v", convErr.Path, convErr.Err), StatusCode: StatusEncodeFailed, Cause: err}
	}
}

func verify(icogenCli command.Cli, res *iconconv.Result) error {
	dims, err := iconconv.Inspect(res.Output)
	if err != nil {
		return command.StatusError{Status: err.Error(), StatusCode: StatusEncodeFailed, Cause: err}
	}
	if len(dims) != len(res.Sizes) {
		return command.StatusError{
			Status:     fmt.Sprintf("%s holds %d images, expected %d", res.Output, len(dims), len(res.Sizes)),
			StatusCode: StatusEncodeFailed,
		}
	}
	for i, d := range dims {
		if want := image.Pt(res.Sizes[i], res.Sizes[i]); d != want {
			return command.StatusError{
				Status:     fmt.Sprintf("%s image %d is %dx%d, expected %dx%d", res.Output, i, d.X, d.Y, want.X, want.Y),
				StatusCode: StatusEncodeFailed,
			}
		}
	}
	for _, d := range dims {
		icogenCli.Out().With(aec.Faint).Printf("  %dx%d\n", d.X, d.Y)
	}
	return nil
}

func joinSizes(sizes []int) string {
	s := make([]string, len(sizes))
	for i, size := range sizes {
		s[i] = strconv.Itoa(size)
	}
	return strings.Join(s, ", ")
}
