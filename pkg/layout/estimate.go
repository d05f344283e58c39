package layout

import "github.com/causelab/causeway/pkg/diagram"

// Text metrics. The renderer draws labels at fontSize; 0.55em per
// character is a workable average for the sans stacks it uses.
const (
	fontSize  = 13.0
	charWidth = fontSize * 0.55

	minNodeWidth = 120.0
	textPadding  = 28.0
)

// Role-dependent heights. A plain node is one label line; an
// expandable node lists its items below the label; cluster members
// render compact inside their cluster's grid.
const (
	plainNodeHeight      = 46.0
	expandableBaseHeight = 58.0
	itemHeight           = 18.0
	clusterMemberHeight  = 40.0
)

// size is an estimated node box in pixels.
type size struct {
	w, h float64
}

// nodeRole selects which height model estimateSize applies.
type nodeRole int

const (
	// rolePlain is a regular content node in a tier row.
	rolePlain nodeRole = iota
	// roleClusterMember is a node drawn inside a cluster grid cell.
	roleClusterMember
)

// estimateSize predicts the rendered box for a node before any
// position is known. Pure and deterministic: identical input always
// yields the identical size, which layout snapshot tests rely on.
//
// Width follows the longest text among the label and the item texts;
// fixedWidth (from Options.NodeWidth) overrides it entirely. Height
// follows the role: nodes with items grow by itemHeight per item,
// cluster members use a compact fixed height regardless of items.
func estimateSize(n diagram.Node, fixedWidth float64, role nodeRole) size {
	var s size

	if fixedWidth > 0 {
		s.w = fixedWidth
	} else {
		longest := len(n.DisplayLabel())
		for _, item := range n.Items {
			if l := len(item.Label); l > longest {
				longest = l
			}
			if l := len(item.Text); l > longest {
				longest = l
			}
		}
		s.w = float64(longest)*charWidth + textPadding
		if s.w < minNodeWidth {
			s.w = minNodeWidth
		}
	}

	switch {
	case role == roleClusterMember:
		s.h = clusterMemberHeight
	case len(n.Items) > 0:
		s.h = expandableBaseHeight + itemHeight*float64(len(n.Items))
	default:
		s.h = plainNodeHeight
	}
	return s
}
