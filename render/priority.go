package render

// ZOrder groups paint instructions. Lower values paint first
type ZOrder uint8

const (
	ZBackground ZOrder = iota
	ZNormal
	ZHigh
	ZCaret
	ZGlass // overlays such as modal dialogs
)

// zOrders lists every group in paint order
var zOrders = [...]ZOrder{ZBackground, ZNormal, ZHigh, ZCaret, ZGlass}

func (z ZOrder) String() string {
	switch z {
	case ZBackground:
		return "background"
	case ZNormal:
		return "normal"
	case ZHigh:
		return "high"
	case ZCaret:
		return "caret"
	case ZGlass:
		return "glass"
	}
	return "unknown"
}
