package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prateek/heapscope/graph"
	"github.com/prateek/heapscope/snapshot"
)

var pathsMax int

var pathsCmd = &cobra.Command{
	Use:   "paths <dump-file> <object-id>",
	Short: "Show paths from an object to the dump's root objects",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		snap, err := snapshot.Read(args[0])
		if err != nil {
			exitErr("failed to read dump", err)
		}
		raw, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			exitErr("bad object id", err)
		}
		from := snapshot.ObjID(raw)

		g := graph.FromSnapshot(snap)
		if g.Node(from) == nil {
			exitErr("unknown object", fmt.Errorf("no object %d in dump", from))
		}

		found := graph.PathsToRoots(g, from, pathsMax)
		if len(found) == 0 {
			fmt.Printf("no paths from object %d to any root\n", from)
			return
		}
		for _, p := range found {
			parts := make([]string, len(p.IDs))
			for i, id := range p.IDs {
				parts[i] = strconv.FormatUint(uint64(id), 10)
			}
			fmt.Println(strings.Join(parts, " <- "))
		}
	},
}

func init() {
	pathsCmd.Flags().IntVar(&pathsMax, "max", 5, "Maximum number of paths to report")
	RootCmd.AddCommand(pathsCmd)
}
