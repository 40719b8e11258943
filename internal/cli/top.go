package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/prateek/heapscope/graph"
	"github.com/prateek/heapscope/snapshot"
)

var topLimit int

var topCmd = &cobra.Command{
	Use:   "top <dump-file>",
	Short: "Show the objects retaining the most memory in a dump",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		snap, err := snapshot.Read(args[0])
		if err != nil {
			exitErr("failed to read dump", err)
		}

		g := graph.FromSnapshot(snap)
		retained := graph.RetainedSize(g)

		type row struct {
			id       snapshot.ObjID
			typeName string
			own      uint64
			retained uint64
		}
		rows := make([]row, 0, len(retained))
		for id, size := range retained {
			n := g.Node(id)
			if n == nil {
				continue
			}
			rows = append(rows, row{id: id, typeName: n.TypeName, own: n.Size, retained: size})
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].retained != rows[j].retained {
				return rows[i].retained > rows[j].retained
			}
			return rows[i].id < rows[j].id
		})

		if topLimit > 0 && len(rows) > topLimit {
			rows = rows[:topLimit]
		}

		fmt.Printf("%-8s %-10s %-10s %s\n", "ID", "RETAINED", "OWN", "TYPE")
		for _, r := range rows {
			fmt.Printf("%-8d %-10d %-10d %s\n", uint64(r.id), r.retained, r.own, r.typeName)
		}
	},
}

func init() {
	topCmd.Flags().IntVar(&topLimit, "limit", 20, "Maximum rows to print (0 = all)")
	RootCmd.AddCommand(topCmd)
}
