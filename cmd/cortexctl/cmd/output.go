package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/neurodeck-org/cortex-native/internal/serde"
	"gopkg.in/yaml.v3"
)

// render writes v in the selected output format. text is used for the text format.
func render(w io.Writer, v any, text func(w io.Writer)) error {
	switch strings.ToLower(outputFormat) {
	case "json":
		data, err := serde.MarshalJson(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))

		return err

	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)

		return err

	case "text", "":
		text(w)
		return nil
	}

	return fmt.Errorf("unknown output format %q", outputFormat)
}

// table writes rows as aligned columns under an upper-cased header.
func table(w io.Writer, header []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "Nothing found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(header, "\t")))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}
