package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/spotlight/internal/focus"
	"github.com/yourusername/spotlight/internal/scene"
	"github.com/yourusername/spotlight/internal/state"
	"github.com/yourusername/spotlight/internal/types"
)

// PrintNodesTable prints the scene's nodes in registration order
func PrintNodesTable(w io.Writer, s *scene.Scene, fs *state.FocusState) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Rect", "Container", "Disabled", "Focused")

	current := fs.Current()
	for _, node := range s.Nodes() {
		disabled := ""
		if node.Disabled {
			disabled = "yes"
		}
		focused := ""
		if node.ID == current {
			focused = "*"
		}

		if err := table.Append(
			fmt.Sprintf("%d", node.ID),
			truncate(node.Name, 25),
			node.Rect.String(),
			containerPath(s, node.Container),
			disabled,
			focused,
		); err != nil {
			return err
		}
	}

	return table.Render()
}

// PrintContainersTable prints containers with their policies and remembered focus
func PrintContainersTable(w io.Writer, s *scene.Scene, fs *state.FocusState) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Parent", "Restrict", "Enter To", "Default", "Leave For", "Last Focused")

	for _, c := range s.Containers() {
		enterTo := c.Policy.EnterTo.String()
		if enterTo == "" {
			enterTo = "-"
		}
		last := "-"
		if id, ok := fs.LastFocused(c.ID); ok {
			last = nodeLabel(s, id)
		}

		if err := table.Append(
			fmt.Sprintf("%d", c.ID),
			truncate(c.Name, 25),
			containerPath(s, c.Parent),
			c.Policy.Restrict.String(),
			enterTo,
			nodeLabel(s, c.Policy.DefaultElement),
			DescribeLeaveFor(s, c.Policy),
			last,
		); err != nil {
			return err
		}
	}

	return table.Render()
}

// PrintHistoryTable prints recorded focus transitions, oldest first
func PrintHistoryTable(w io.Writer, s *scene.Scene, history []focus.Transition) error {
	table := tablewriter.NewWriter(w)
	table.Header("Time", "Cause", "Direction", "From", "To")

	for _, t := range history {
		direction := t.Direction
		if direction == "" {
			direction = "-"
		}
		if err := table.Append(
			t.At.Format("15:04:05.000"),
			string(t.Cause),
			direction,
			nodeLabel(s, t.From),
			nodeLabel(s, t.To),
		); err != nil {
			return err
		}
	}

	return table.Render()
}

// DescribeLeaveFor summarizes a policy's leaveFor overrides, e.g. "up=search left=@menu down=block"
func DescribeLeaveFor(s *scene.Scene, p types.Policy) string {
	var parts []string
	for _, dir := range types.AllDirections {
		leave := p.Leave(dir)
		switch leave.Kind {
		case types.LeaveBlock:
			parts = append(parts, dir.String()+"=block")
		case types.LeaveNode:
			parts = append(parts, dir.String()+"="+nodeLabel(s, leave.Node))
		case types.LeaveContainer:
			parts = append(parts, dir.String()+"=@"+containerLabel(s, leave.Container))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// SortedNames returns node names sorted alphabetically, for completions and messages
func SortedNames(s *scene.Scene) []string {
	names := make([]string, 0, s.Len())
	for _, n := range s.Nodes() {
		names = append(names, n.Name)
	}
	sort.Strings(names)
	return names
}

// Helper functions

func truncate(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func nodeLabel(s *scene.Scene, id types.NodeID) string {
	if id == types.NoNode {
		return "-"
	}
	node, ok := s.Node(id)
	if !ok {
		return fmt.Sprintf("#%d (gone)", id)
	}
	return node.Name
}

func containerLabel(s *scene.Scene, id types.ContainerID) string {
	c, ok := s.Container(id)
	if !ok {
		return fmt.Sprintf("#%d", id)
	}
	return truncate(c.Name, 20)
}

// containerPath renders a container chain outermost first, e.g. "grid/row1"
func containerPath(s *scene.Scene, id types.ContainerID) string {
	chain := s.ContainerChain(id)
	if len(chain) == 0 {
		return "-"
	}
	names := make([]string, len(chain))
	for i, cid := range chain {
		names[len(chain)-1-i] = containerLabel(s, cid)
	}
	return strings.Join(names, "/")
}
