package rsvp

// ProcessText runs the full pipeline on text: tokenize, time, and
// aggregate. The direct path for inputs small enough to process in one
// go; use NewChunkedProcessor for large documents.
func ProcessText(text string, settings ReaderSettings, info InfoSource) ([]*Slide, SlideShowData) {
	slides := Tokenize(text, settings)
	ApplyTiming(slides, settings, info)
	return slides, AggregateStats(slides, settings)
}

// ProcessContent runs the pipeline over structured content blocks,
// returning the slides, aggregate stats, and the index of each block's
// first slide.
func ProcessContent(blocks []ContentBlock, settings ReaderSettings, info InfoSource) ([]*Slide, SlideShowData, []int) {
	slides, starts := BlocksToSlides(blocks, settings, info)
	return slides, AggregateStats(slides, settings), starts
}
