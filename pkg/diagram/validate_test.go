package diagram

import "testing"

func findingCodes(findings []Finding) map[string]int {
	codes := make(map[string]int)
	for _, f := range findings {
		codes[f.Code]++
	}
	return codes
}

func TestValidate_CleanDiagram(t *testing.T) {
	nodes := []Node{
		{ID: "rain", Tier: TierCause},
		{ID: "wet", Tier: TierEffect},
	}
	edges := []Edge{{From: "rain", To: "wet"}}

	findings := Validate(nodes, edges)
	if len(findings) != 0 {
		t.Errorf("Validate() = %v, want no findings", findings)
	}
}

func TestValidate_DuplicateID(t *testing.T) {
	nodes := []Node{
		{ID: "a", Tier: TierCause},
		{ID: "a", Tier: TierEffect},
	}
	findings := Validate(nodes, nil)
	if findingCodes(findings)[FindingDuplicateID] != 1 {
		t.Errorf("Validate() = %v, want one duplicate_id finding", findings)
	}
	if !HasErrors(findings) {
		t.Error("HasErrors() = false, want true")
	}
}

func TestValidate_DanglingEndpointIsWarning(t *testing.T) {
	nodes := []Node{{ID: "a", Tier: TierCause}}
	edges := []Edge{{From: "a", To: "ghost"}}

	findings := Validate(nodes, edges)
	if findingCodes(findings)[FindingDanglingEndpoint] != 1 {
		t.Fatalf("Validate() = %v, want one dangling_endpoint finding", findings)
	}
	if HasErrors(findings) {
		t.Error("HasErrors() = true, want false (dangling endpoints are warnings)")
	}
}

func TestValidate_InvalidTier(t *testing.T) {
	nodes := []Node{{ID: "a", Tier: "sideways"}}
	findings := Validate(nodes, nil)
	if findingCodes(findings)[FindingInvalidTier] != 1 {
		t.Errorf("Validate() = %v, want one invalid_tier finding", findings)
	}
}

func TestValidate_DetectsCycle(t *testing.T) {
	nodes := []Node{
		{ID: "a", Tier: TierCause},
		{ID: "b", Tier: TierIntermediate},
		{ID: "c", Tier: TierEffect},
	}
	edges := []Edge{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "c", To: "a"},
	}

	findings := Validate(nodes, edges)
	if findingCodes(findings)[FindingCycle] != 1 {
		t.Errorf("Validate() = %v, want one cycle finding", findings)
	}
	if HasErrors(findings) {
		t.Error("HasErrors() = true, want false (cycles are tolerated)")
	}
}

func TestValidate_AcyclicDiamondIsNotACycle(t *testing.T) {
	nodes := []Node{
		{ID: "a", Tier: TierCause},
		{ID: "b", Tier: TierIntermediate},
		{ID: "c", Tier: TierIntermediate},
		{ID: "d", Tier: TierEffect},
	}
	edges := []Edge{
		{From: "a", To: "b"},
		{From: "a", To: "c"},
		{From: "b", To: "d"},
		{From: "c", To: "d"},
	}

	findings := Validate(nodes, edges)
	if n := findingCodes(findings)[FindingCycle]; n != 0 {
		t.Errorf("Validate() found %d cycles in a diamond, want 0", n)
	}
}

func TestValidate_UnknownStrengthAndEffect(t *testing.T) {
	nodes := []Node{
		{ID: "a", Tier: TierCause},
		{ID: "b", Tier: TierEffect},
	}
	edges := []Edge{{From: "a", To: "b", Strength: "herculean", Effect: "sideways"}}

	codes := findingCodes(Validate(nodes, edges))
	if codes[FindingInvalidStrength] != 1 || codes[FindingInvalidEffect] != 1 {
		t.Errorf("Validate() codes = %v, want invalid_strength and invalid_effect", codes)
	}
}
