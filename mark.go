package watermark

import (
	"github.com/yyyoichi/watermark_lf/internal/watermark"
	"github.com/yyyoichi/watermark_lf/mark"
)

// EmbedMark is a watermark reduced to the scalar added to the luminance of an image.
// mark.Mark implements it.
type EmbedMark = watermark.EmbedMark

var _ EmbedMark = mark.Mark(0)
