package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
)

func stdout(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// requireArgs checks the positional argument count.
// A negative most means no upper bound.
func requireArgs(cmd *cli.Command, least, most int) error {
	n := cmd.NArg()
	if n < least || (most >= 0 && n > most) {
		return fmt.Errorf("%s: usage: %s %s %s", cmd.Name, cmd.Root().Name, cmd.Name, cmd.ArgsUsage)
	}
	return nil
}
