package layout

import (
	"fmt"

	"github.com/causelab/causeway/pkg/diagram"
)

// Container geometry. The header band holds the label; padding keeps
// member boxes off the border. Vertical padding is asymmetric per
// tier: the intermediate tier carries tall expandable nodes that need
// extra room below, the effect tier holds simple nodes and gets less.
const (
	containerHeaderHeight = 30.0
	containerPadTop       = 14.0
	containerPadBottom    = 18.0
	containerPadX         = 16.0

	intermediatePadBottom = 30.0
	effectPadBottom       = 10.0
)

// tierLabels name the tier containers.
var tierLabels = map[diagram.Tier]string{
	diagram.TierLeaf:         "Background Factors",
	diagram.TierCause:        "Causes",
	diagram.TierIntermediate: "Mechanisms",
	diagram.TierEffect:       "Effects",
}

// deriveTierContainer wraps one tier's members in a labeled box.
// Returns nil for an empty member set.
//
// The vertical span tracks member extents plus the tier's padding and
// the header band. The horizontal span is the fixed width centered on
// centerX regardless of member extents - a deliberate simplification
// so containers align across tiers.
func deriveTierContainer(tier diagram.Tier, members []PositionedNode, centerX, width float64) *PositionedNode {
	if len(members) == 0 {
		return nil
	}

	top, bottom := verticalSpan(members, tier)
	return &PositionedNode{
		ID:     GroupIDPrefix + string(tier),
		Kind:   KindContainer,
		Label:  tierLabels[tier],
		Tier:   tier,
		X:      centerX - width/2,
		Y:      top,
		Width:  width,
		Height: bottom - top,
	}
}

// deriveSubgroupContainer wraps one subgroup's members inside a tier.
// Unlike tier containers the horizontal span is member-derived, sized
// to the subgroup's own column. The container numbers itself into the
// tier via the key so two tiers can share a subgroup name.
func deriveSubgroupContainer(tier diagram.Tier, key string, members []PositionedNode, style SubgroupStyle) *PositionedNode {
	if len(members) == 0 {
		return nil
	}

	top, bottom := verticalSpan(members, tier)
	left, right := horizontalSpan(members)

	label := style.Label
	if label == "" {
		label = key
	}
	return &PositionedNode{
		ID:       fmt.Sprintf("%s%s-%s", ClusterIDPrefix, tier, key),
		Kind:     KindContainer,
		Label:    label,
		Tier:     tier,
		Subgroup: key,
		X:        left - containerPadX,
		Y:        top,
		Width:    right - left + 2*containerPadX,
		Height:   bottom - top,
		Fill:     style.Colors.Fill,
		Stroke:   style.Colors.Stroke,
		Header:   style.Colors.Header,
	}
}

func verticalSpan(members []PositionedNode, tier diagram.Tier) (top, bottom float64) {
	minY, maxBottom := members[0].Y, members[0].Bottom()
	for _, m := range members[1:] {
		if m.Y < minY {
			minY = m.Y
		}
		if b := m.Bottom(); b > maxBottom {
			maxBottom = b
		}
	}

	padBottom := containerPadBottom
	switch tier {
	case diagram.TierIntermediate:
		padBottom = intermediatePadBottom
	case diagram.TierEffect:
		padBottom = effectPadBottom
	}
	return minY - containerHeaderHeight - containerPadTop, maxBottom + padBottom
}

func horizontalSpan(members []PositionedNode) (left, right float64) {
	left, right = members[0].X, members[0].X+members[0].Width
	for _, m := range members[1:] {
		if m.X < left {
			left = m.X
		}
		if r := m.X + m.Width; r > right {
			right = r
		}
	}
	return left, right
}
