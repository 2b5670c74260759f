/*
Copyright (C) 2026  OpenPMD-Go Contributors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Command openpmd-inspect opens a file read-only and dumps its
// path/dataset/attribute/chunk inventory without ever mutating it,
// built with cobra's multi-subcommand convention (openpmd-shell, the
// other command, uses the standard flag package instead).
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openpmd/openpmd-go/backend/adios2"
	"github.com/openpmd/openpmd-go/backend/hdf5"
	"github.com/openpmd/openpmd-go/backend/jsonfile"
	"github.com/openpmd/openpmd-go/config"
	"github.com/openpmd/openpmd-go/media"
)

var (
	flagBackend string
	flagDir     string
)

func main() {
	root := &cobra.Command{
		Use:   "openpmd-inspect",
		Short: "Read-only inventory dump for openpmd-go files",
	}
	root.PersistentFlags().StringVar(&flagBackend, "backend", "jsonfile", "backend to open with: jsonfile, hdf5, or adios2")
	root.PersistentFlags().StringVar(&flagDir, "dir", ".", "directory the file is opened under")

	root.AddCommand(dumpCmd())
	root.AddCommand(pathsCmd())
	root.AddCommand(datasetsCmd())
	root.AddCommand(attrsCmd())
	root.AddCommand(chunksCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Recursively print every path, dataset, attribute, and chunk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var b strings.Builder
			err := dispatchBackend(args[0], func(ops inspectorOps) error {
				return ops.dump(&b, "", 0)
			})
			if err != nil {
				return err
			}
			fmt.Print(b.String())
			return nil
		},
	}
}

func pathsCmd() *cobra.Command {
	var at string
	cmd := listCmd("paths", "List the child groups under --at (default root)", &at, func(ops inspectorOps) ([]string, error) {
		return ops.listPaths(at)
	})
	return cmd
}

func datasetsCmd() *cobra.Command {
	var at string
	return listCmd("datasets", "List the datasets directly under --at (default root)", &at, func(ops inspectorOps) ([]string, error) {
		return ops.listDatasets(at)
	})
}

func attrsCmd() *cobra.Command {
	var at string
	return listCmd("attrs", "List the attribute names on --at (default root)", &at, func(ops inspectorOps) ([]string, error) {
		return ops.listAttributes(at)
	})
}

func chunksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chunks <file> <dataset-path>",
		Short: "List the written chunks of a dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchBackend(args[0], func(ops inspectorOps) error {
				lines, err := ops.availableChunkLines(args[1])
				if err != nil {
					return err
				}
				for _, l := range lines {
					fmt.Println(l)
				}
				return nil
			})
		},
	}
}

func listCmd(use, short string, at *string, run func(inspectorOps) ([]string, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(at, "at", "", "path to query")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return dispatchBackend(args[0], func(ops inspectorOps) error {
			names, err := run(ops)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		})
	}
	return cmd
}

// inspectorOps narrows *inspector[P] down to the P-independent surface
// the cobra commands above need, so each subcommand body is written
// once instead of once per concrete Position type.
type inspectorOps interface {
	listPaths(path string) ([]string, error)
	listDatasets(path string) ([]string, error)
	listAttributes(path string) ([]string, error)
	availableChunkLines(path string) ([]string, error)
	dump(w *strings.Builder, path string, depth int) error
}

type opsAdapter[P any] struct {
	in *inspector[P]
}

func (a opsAdapter[P]) listPaths(path string) ([]string, error)      { return a.in.listPaths(path) }
func (a opsAdapter[P]) listDatasets(path string) ([]string, error)   { return a.in.listDatasets(path) }
func (a opsAdapter[P]) listAttributes(path string) ([]string, error) { return a.in.listAttributes(path) }
func (a opsAdapter[P]) dump(w *strings.Builder, path string, depth int) error {
	return a.in.dump(w, path, depth)
}

func (a opsAdapter[P]) availableChunkLines(path string) ([]string, error) {
	chunks, err := a.in.availableChunks(path)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = fmt.Sprintf("offset=%v extent=%v writer=%d", []uint64(c.Offset), []uint64(c.Extent), c.Writer)
	}
	return out, nil
}

func medium() media.Medium {
	return media.NewLocal(flagDir)
}

// dispatchBackend instantiates the concrete inspector[P] flagBackend
// names, opens file read-only, and hands it to fn through the
// inspectorOps seam, closing it again once fn returns.
func dispatchBackend(file string, fn func(inspectorOps) error) error {
	switch flagBackend {
	case "jsonfile":
		in, err := openInspector[jsonfile.Position](jsonfile.New(medium()), file)
		if err != nil {
			return err
		}
		defer in.close()
		return fn(opsAdapter[jsonfile.Position]{in})
	case "hdf5":
		cfg := config.HDF5{Dataset: config.HDF5Dataset{Chunks: "auto"}}
		in, err := openInspector[hdf5.Position](hdf5.New(medium(), cfg, true), file)
		if err != nil {
			return err
		}
		defer in.close()
		return fn(opsAdapter[hdf5.Position]{in})
	case "adios2":
		cfg := config.ADIOS2{UseGroupTable: true}
		in, err := openInspector[adios2.Position](adios2.New(medium(), cfg, adios2.BP5), file)
		if err != nil {
			return err
		}
		defer in.close()
		return fn(opsAdapter[adios2.Position]{in})
	default:
		return fmt.Errorf("unknown backend %q (want jsonfile, hdf5, or adios2)", flagBackend)
	}
}
