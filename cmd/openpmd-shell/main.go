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

// Command openpmd-shell is an interactive readline shell that enqueues
// I/O tasks against a handler.Handler and prints their results: the
// direct generalization of the teacher's main.go/scm.Repl loop, now
// driving the task/handler API instead of Scheme expressions.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/dc0d/onexit"

	"github.com/openpmd/openpmd-go/backend/adios2"
	"github.com/openpmd/openpmd-go/backend/hdf5"
	"github.com/openpmd/openpmd-go/backend/jsonfile"
	"github.com/openpmd/openpmd-go/config"
	"github.com/openpmd/openpmd-go/handler"
	"github.com/openpmd/openpmd-go/media"
)

const (
	newprompt    = "\033[32m>\033[0m "
	resultprompt = "\033[31m=\033[0m "
)

func main() {
	backendName := flag.String("backend", "jsonfile", "backend to drive: jsonfile, hdf5, or adios2")
	dir := flag.String("dir", ".", "directory files are created/opened under")
	flag.Parse()

	medium := media.NewLocal(*dir)

	fmt.Print(`openpmd-shell
    This program comes with ABSOLUTELY NO WARRANTY;
    This is free software, and you are welcome to redistribute it
    under certain conditions;
`)

	switch *backendName {
	case "jsonfile":
		runShell[jsonfile.Position](jsonfile.New(medium))
	case "hdf5":
		cfg := config.HDF5{Dataset: config.HDF5Dataset{Chunks: "auto"}}
		runShell[hdf5.Position](hdf5.New(medium, cfg, true))
	case "adios2":
		cfg := config.ADIOS2{UseGroupTable: true}
		runShell[adios2.Position](adios2.New(medium, cfg, adios2.BP5))
	default:
		fmt.Fprintf(os.Stderr, "unknown backend %q (want jsonfile, hdf5, or adios2)\n", *backendName)
		os.Exit(1)
	}
}

// runShell owns one backend's concrete position type for the whole
// process lifetime; main picks P via the explicit type argument at each
// of the three call sites above rather than relying on inference across
// an interface-typed parameter.
func runShell[P any](backend handler.Backend[P]) {
	s := newSession(backend)
	onexit.Register(func() { s.finalize() })

	l, err := readline.NewEx(&readline.Config{
		Prompt:            newprompt,
		HistoryFile:       ".openpmd-shell-history.tmp",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()
	l.CaptureExitSignal()

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			panic(err)
		}
		if line == "" {
			continue
		}

		out, derr := s.dispatch(line)
		if derr == errQuit {
			break
		} else if derr != nil {
			fmt.Println(resultprompt+"error:", derr)
			continue
		}
		if out != "" {
			fmt.Println(resultprompt + out)
		}
	}
	s.finalize()
}
