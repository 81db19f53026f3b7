package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boothtree/pkg/booth"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the Booth partial-product layout",
		Long: `Layout prints the radix-4 Booth partial-product matrix of a multiplier,
one row per partial product with column 0 on the left, followed by the number
of bits in each result column.`,
		Example: "  boothtree layout -w 8",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("width") {
				width = c.config.Tree.Width
			}
			l, err := booth.NewLayout(width)
			if err != nil {
				return err
			}

			printTitle("Booth layout, %d-bit operands", l.Width())
			printKeyValue("partial rows", strconv.Itoa(l.PPNum()))
			printKeyValue("result bits", strconv.Itoa(l.ResultWidth()))
			fmt.Println()
			for row, line := range strings.Split(strings.TrimSuffix(l.String(), "\n"), "\n") {
				start, end, _ := l.Span(row)
				fmt.Printf("%s %s %s\n", styleDim.Render(fmt.Sprintf("%2d", row)), line, styleDim.Render(fmt.Sprintf("[%d,%d)", start, end)))
			}
			fmt.Println()

			pop := l.Population()[:l.ResultWidth()]
			counts := make([]string, len(pop))
			peak := 0
			for i, n := range pop {
				counts[i] = strconv.Itoa(n)
				peak = max(peak, n)
			}
			printKeyValue("population", strings.Join(counts, " "))
			printKeyValue("tallest", strconv.Itoa(peak))
			printNextStep("Reduce it", fmt.Sprintf("boothtree build -w %d", l.Width()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "operand width in bits (default from config)")
	return cmd
}
