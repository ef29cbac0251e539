// cmd/sectionctl/main.go
//
// sectionctl – offline tooling for stored section content.
//
// Operators paste a section (or a list of sections) exported from the
// database into a file and ask what the renderer makes of it:
//
//	sectionctl normalize dump.json   canonical JSON, legacy fields folded in
//	sectionctl render dump.json      the page HTML the preview would show
//	sectionctl variants              every registered (type, variant) pair
//	sectionctl schema                DDL the components need
//
// "-" reads from stdin.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanizio/sitekit/internal/component"
	"github.com/yanizio/sitekit/internal/section"
	"github.com/yanizio/sitekit/internal/variant"

	_ "github.com/yanizio/sitekit/components/classic"
	_ "github.com/yanizio/sitekit/components/editor"
	_ "github.com/yanizio/sitekit/components/electric"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "sectionctl",
	Short:        "Inspect and render stored sections",
	SilenceUsage: true,
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Print the canonical form of each section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := readFile(args[0])
		if err != nil {
			return err
		}
		out := make([]section.Section, len(list))
		for i, s := range list {
			out[i] = section.Normalize(s).Section()
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render the sections as the preview frame would",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := readFile(args[0])
		if err != nil {
			return err
		}
		all, _ := cmd.Flags().GetBool("all")
		if all {
			for i := range list {
				list[i].Active = true
			}
		}
		_, err = io.WriteString(cmd.OutOrStdout(), string(variant.RenderPage(list)))
		return err
	},
}

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List registered variant renderers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := bufio.NewWriter(cmd.OutOrStdout())
		for _, k := range variant.Keys() {
			fmt.Fprintln(w, k.String())
		}
		return w.Flush()
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the DDL every component needs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, stmt := range component.Migrations() {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s;\n\n", strings.TrimSpace(stmt)); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolP("all", "a", false, "Render inactive sections too")

	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(schemaCmd)
}

func readFile(path string) ([]section.Section, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return decodeSections(b)
}

// decodeSections accepts either one section object or an array of them.
func decodeSections(b []byte) ([]section.Section, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("no input")
	}
	if b[0] == '[' {
		var list []section.Section
		if err := json.Unmarshal(b, &list); err != nil {
			return nil, fmt.Errorf("decoding section list: %w", err)
		}
		return list, nil
	}
	var s section.Section
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decoding section: %w", err)
	}
	return []section.Section{s}, nil
}
