package styles

// DefaultTagBackground is used when no other background applies, including
// for tags ranked beyond the end of the palette.
const DefaultTagBackground = "#ff9655"

// AutoColor selects black or white text based on the background.
const AutoColor = "auto"

// DefaultPalette assigns backgrounds by rank: the heaviest tag gets the
// first entry.
var DefaultPalette = []string{
	"#db843d", "#92a8cd", "#a47d7c", "#058dc7", "#50b432", "#ed561b", "#24cbe5", "#64e572",
	"#ff9655", "#d6cb54", "#6af9c4", "#b5ca92", "#2f7ed8", "#5c40de", "#8bbc21", "#910000",
	"#1aadce", "#492970", "#f28f43", "#77a1e5", "#c42525", "#a6c96a", "#db843d", "#92a8cd",
	"#a47d7c", "#058dc7", "#50b432", "#ed561b", "#24cbe5", "#64e572", "#ff9655", "#d6cb54",
	"#6af9c4", "#b5ca92", "#2f7ed8", "#5c40de", "#8bbc21", "#910000", "#1aadce", "#492970",
	"#f28f43", "#77a1e5", "#c42525", "#a6c96a", "#db843d", "#92a8cd", "#a47d7c", "#058dc7",
	"#50b432", "#ed561b", "#24cbe5", "#64e572", "#ff9655", "#d6cb54", "#6af9c4", "#b5ca92",
	"#2f7ed8", "#5c40de", "#8bbc21", "#910000", "#1aadce", "#492970", "#f28f43", "#77a1e5",
}
