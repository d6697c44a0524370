package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/mclog/pkg/mc/arch"
	"github.com/Manu343726/mclog/pkg/utils"
	"github.com/spf13/cobra"
)

var supportedArchs = utils.Map(arch.All(), func(d *arch.Descriptor) string { return d.Id.String() })

var docsCmd = &cobra.Command{
	Use:   "docs arch",
	Short: "Show the register and instruction tables of an architecture",
	Long: `Dumps the register classes and instruction mnemonics of the specified architecture.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.

Supported architectures:
` + strings.Join(utils.Map(supportedArchs, func(name string) string { return "  " + name }), "\n"),
	Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.ExactArgs(1)),
	ValidArgs: supportedArchs,
	RunE: func(cmd *cobra.Command, args []string) error {
		archId, err := arch.ParseArchId(args[0])
		if err != nil {
			return err
		}

		descriptor, err := arch.Lookup(archId)
		if err != nil {
			return err
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile == "" {
			fmt.Print(descriptor.Documentation(0))
			return nil
		}

		file, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = fmt.Fprint(file, descriptor.Documentation(0))
		return err
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file. If not specified, the documentation is dumped to stdout.")
}
