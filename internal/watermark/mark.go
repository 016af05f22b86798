package watermark

// EmbedMark is a watermark reduced to the scalar that is added to the luminance plane.
type EmbedMark interface {
	Value() float32
}
