package dragdrop

// HitTest computes the drop position for a pointer at pointerY over a
// block with the given bounding box.
//
// The top and bottom edgeThreshold bands of the box resolve to
// before/after. Between the bands, containers resolve to inside;
// non-containers split at the midline. A zero-height rect degenerates
// to before.
func HitTest(pointerY float64, rect Rect, edgeThreshold float64, isContainer bool) Position {
	if rect.Height <= 0 {
		return PositionBefore
	}

	relativeY := (pointerY - rect.Y) / rect.Height
	edgeRatio := edgeThreshold / rect.Height

	switch {
	case relativeY < edgeRatio:
		return PositionBefore
	case relativeY > 1-edgeRatio:
		return PositionAfter
	case isContainer:
		return PositionInside
	case relativeY < 0.5:
		return PositionBefore
	default:
		return PositionAfter
	}
}
