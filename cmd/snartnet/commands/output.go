package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"snartnet/internal/store"
)

// printValue writes v to stdout in the selected output format.
func printValue(cmd *cobra.Command, v any) error {
	raw, err := store.Marshal(v)
	if err != nil {
		return err
	}
	return printJSON(cmd, raw)
}

// printJSON re-renders a JSON document in the selected output format,
// keeping its key order.
func printJSON(cmd *cobra.Command, raw []byte) error {
	out := cmd.OutOrStdout()
	if output == "yaml" {
		return writeYAML(out, raw)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, buf.String())
	return err
}

// writeYAML parses JSON as YAML (a superset) and prints it in block style.
func writeYAML(w io.Writer, raw []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return err
	}
	resetStyle(&node)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

// resetStyle drops the flow and quoting styles inherited from JSON.
func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}
