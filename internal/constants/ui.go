package constants

// HeaderSeparatorLength is the length of the header separator line.
const HeaderSeparatorLength = 50
