package dump

import (
	"errors"
	"log/slog"
	"os"

	"github.com/Manu343726/mclog/pkg/logging"
	"github.com/Manu343726/mclog/pkg/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var ErrRender = errors.New("cannot render program")
var ErrInvalidColorMode = errors.New("invalid color mode")

var (
	dumpOutput    string
	dumpBinary    bool
	dumpMaxOutput int
	dumpJobs      int
	dumpSlog      bool
)

// Format flag toggles, bound to "format.<name>" configuration keys
var formatFlagBindings = []struct {
	name  string
	flag  logging.FormatFlags
	usage string
}{
	{"machine-code", logging.FormatFlag_MachineCode, "Show the machine code of each instruction"},
	{"explain-imms", logging.FormatFlag_ExplainImms, "Explain immediate values"},
	{"hex-imms", logging.FormatFlag_HexImms, "Write immediate values in hexadecimal"},
	{"hex-offsets", logging.FormatFlag_HexOffsets, "Write address offsets in hexadecimal"},
	{"reg-casts", logging.FormatFlag_RegCasts, "Show casts between virtual register kinds"},
	{"positions", logging.FormatFlag_Positions, "Show node positions"},
	{"annotations", logging.FormatFlag_Annotations, "Show node annotations"},
}

var indentationBindings = []struct {
	name        string
	indentation logging.IndentationType
}{
	{"code", logging.IndentationType_Code},
	{"label", logging.IndentationType_Label},
	{"comment", logging.IndentationType_Comment},
}

var DumpCmd = &cobra.Command{
	Use:   "dump <files...>",
	Short: "Render program descriptions as assembly listings",
	Long: `Renders YAML (.yaml, .yml) or TOML (.toml) program descriptions as assembly listings.

Files are rendered concurrently and written in the order they were given.
Format options can also be set in the configuration file (format.*, indent.* and color keys)
or through MCLOG_* environment variables.

Examples:
  # Dump a program with machine code and hexadecimal immediates
  mclog dump --machine-code --hex-imms program.yaml

  # Indent instructions and write the listing to a file
  mclog dump --indent-code 4 -o listing.s program.toml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDump,
}

func init() {
	flags := DumpCmd.Flags()

	for _, binding := range formatFlagBindings {
		flags.Bool(binding.name, false, binding.usage)
		cobra.CheckErr(viper.BindPFlag("format."+binding.name, flags.Lookup(binding.name)))
	}

	flags.StringSlice("flags", nil, "Additional format flags by name (e.g. DebugPasses,DebugRA)")
	cobra.CheckErr(viper.BindPFlag("format.flags", flags.Lookup("flags")))

	for _, binding := range indentationBindings {
		name := "indent-" + binding.name
		flags.Uint32(name, 0, "Indentation width of "+binding.name+" lines")
		cobra.CheckErr(viper.BindPFlag("indent."+binding.name, flags.Lookup(name)))
	}

	flags.String("color", "auto", "Colorize the listing: auto, always or never")
	cobra.CheckErr(viper.BindPFlag("color", flags.Lookup("color")))

	flags.StringVarP(&dumpOutput, "output", "o", "", "Output file. If not specified, listings are written to stdout")
	flags.BoolVar(&dumpBinary, "binary", false, "Append a raw dump of the encoded instructions")
	flags.IntVar(&dumpMaxOutput, "max-output", 0, "Maximum size in bytes of each listing, 0 means unlimited")
	flags.IntVarP(&dumpJobs, "jobs", "j", 0, "Number of files rendered concurrently, 0 means one per CPU")
	flags.BoolVar(&dumpSlog, "slog", false, "Send listing lines to the process log instead of the output")
}

// Builds the format options from the configuration
func formatOptionsFromConfig(config *viper.Viper) (logging.FormatOptions, error) {
	var options logging.FormatOptions

	for _, binding := range formatFlagBindings {
		if config.GetBool("format." + binding.name) {
			options.AddFlags(binding.flag)
		}
	}

	for _, name := range config.GetStringSlice("format.flags") {
		flag, err := logging.ParseFormatFlag(name)
		if err != nil {
			return options, err
		}

		options.AddFlags(flag)
	}

	for _, binding := range indentationBindings {
		options.SetIndentation(binding.indentation, config.GetUint32("indent."+binding.name))
	}

	return options, nil
}

func useColor(mode string, out *os.File) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return term.IsTerminal(int(out.Fd())), nil
	}

	return false, utils.MakeError(ErrInvalidColorMode, "'%v', expected auto, always or never", mode)
}

func runDump(cmd *cobra.Command, args []string) error {
	options, err := formatOptionsFromConfig(viper.GetViper())
	if err != nil {
		return err
	}

	config := &renderConfig{
		Options:   options,
		Binary:    dumpBinary,
		MaxOutput: dumpMaxOutput,
		Header:    len(args) > 1,
		Jobs:      dumpJobs,
	}

	if dumpSlog {
		config.Slog = slog.Default()
		config.SlogLevel = slog.LevelInfo
	}

	listings, err := renderFiles(cmd.Context(), args, config)
	if err != nil {
		return err
	}

	if dumpSlog {
		return nil
	}

	out := os.Stdout
	if dumpOutput != "" {
		file, err := os.Create(dumpOutput)
		if err != nil {
			return err
		}
		defer file.Close()

		out = file
	}

	colorize, err := useColor(viper.GetString("color"), out)
	if err != nil {
		return err
	}

	var sink logging.Sink = logging.NewFileSink(out)
	if colorize {
		color.NoColor = false
		sink = &ColorSink{Out: sink}
	}

	for i, listing := range listings {
		if err := sink.Accept(listing); err != nil {
			slog.Warn("cannot write listing", "file", args[i], "error", err)
		}
	}

	return nil
}
