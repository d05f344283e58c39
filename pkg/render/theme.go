package render

// Theme holds the colors one rendering uses. Node and container boxes
// can override fill/stroke per subgroup; the theme supplies every
// default.
type Theme struct {
	Name string

	Background      string
	TierFill        string
	ContainerStroke string
	HeaderText      string
	NodeFill        string
	NodeStroke      string
	Text            string
	MutedText       string
}

// DefaultTheme is the light theme.
var DefaultTheme = Theme{
	Name:            "default",
	Background:      "#ffffff",
	TierFill:        "#f8fafc",
	ContainerStroke: "#cbd5e1",
	HeaderText:      "#475569",
	NodeFill:        "#ffffff",
	NodeStroke:      "#94a3b8",
	Text:            "#0f172a",
	MutedText:       "#64748b",
}

// DarkTheme renders on a dark background with lightened strokes.
var DarkTheme = Theme{
	Name:            "dark",
	Background:      "#0f172a",
	TierFill:        "#1e293b",
	ContainerStroke: "#475569",
	HeaderText:      "#94a3b8",
	NodeFill:        "#1e293b",
	NodeStroke:      "#64748b",
	Text:            "#f1f5f9",
	MutedText:       "#94a3b8",
}

// Themes maps theme names to themes for config lookups.
var Themes = map[string]Theme{
	DefaultTheme.Name: DefaultTheme,
	DarkTheme.Name:    DarkTheme,
}
