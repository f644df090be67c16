package report

// TextPosition represents a positional range in the source text: a token, an
// expression, or an entire declaration. Lines and columns are 1-based to
// match what a user sees in an editor.
type TextPosition struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

// Over computes the position spanning from start to end.
func Over(start, end *TextPosition) *TextPosition {
	return &TextPosition{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}
