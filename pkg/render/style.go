package render

// Visual constants shared across devices. Colors are CSS hex strings fed
// straight to gg.
const (
	backgroundTop    = "#f8fafc"
	backgroundBottom = "#f1f5f9"

	textColor = "#0f172a"
	metaColor = "#64748b"

	maleBG       = "#DBEAFE"
	maleBorder   = "#2563EB"
	femaleBG     = "#FCE7F3"
	femaleBorder = "#DB2777"

	spouseLineColor = "#64748B"
	spouseLineWidth = 2.0
	parentLineColor = "#94A3B8"
	parentLineWidth = 1.5

	shadowColor   = "#000000"
	shadowAlpha   = 0.08
	shadowOffsetY = 2.0

	selectedBorder      = "#16A34A"
	selectedBorderWidth = 3.0
	hoverScale          = 1.02

	lineageHighlightColor = "#f59e0b"
	pulseGlowColor        = "#fbbf24"

	generationLabelFontSize = 14.0
	generationLabelColor    = "#1e293b"

	exportPadding = 50.0
	exportScale   = 2.0
)
