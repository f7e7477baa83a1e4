package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coursegraph/coursegraph/pkg/errors"
	"github.com/coursegraph/coursegraph/pkg/requirement"
)

// exprCommand creates the expr command for inspecting requisite expressions.
func (c *CLI) exprCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "expr [expression]",
		Short: "Parse a requisite expression and print its structure (debug tool)",
		Long: `Parse a raw requisite expression and print the structured requirement
tree as JSON.

Expressions use the catalog wire grammar: name{flags} atoms, '&' for
conjunction, '|' for alternatives, parentheses for grouping.`,
		Example: `  # Single course with an enforced minimum grade
  coursegraph expr "MATH 221{tttf C-}"

  # Conjunction with an alternative group
  coursegraph expr "COMP SCI 300{ttff} & (MATH 222{ttff} | MATH 276{ttff})"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := requirement.Parse(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidExpression, err, "parse expression")
			}

			data, err := json.MarshalIndent(req, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if err := writeFile(data, output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			if output != "" {
				printSuccess("Expression parsed")
				printKeyValue("Kind", string(req.Kind))
				printKeyValue("Courses", strings.Join(req.CourseRefs(), ", "))
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
