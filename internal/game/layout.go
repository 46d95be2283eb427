package game

import (
	"image"

	"github.com/iburimskiy/neuralbg/internal/config"
)

const closeSize = 20

// buttonRect is the theme toggle button.
func buttonRect() image.Rectangle {
	return image.Rect(config.ButtonX, config.ButtonY, config.ButtonX+config.ButtonWidth, config.ButtonY+config.ButtonHeight)
}

// toastRect places the i-th of n toasts in the bottom-right stack. The
// newest sits against the bottom margin and older ones rise above it.
func toastRect(i, n, screenWidth, screenHeight int) image.Rectangle {
	x := screenWidth - config.ToastMargin - config.ToastWidth
	y := screenHeight - config.ToastMargin - (n-i)*config.ToastHeight - (n-1-i)*config.ToastGap
	return image.Rect(x, y, x+config.ToastWidth, y+config.ToastHeight)
}

// closeMinOpacity is the fade level below which the close box is neither
// drawn nor clickable.
const closeMinOpacity = 0.5

// closeRect is the close affordance inside a toast.
func closeRect(toast image.Rectangle) image.Rectangle {
	x := toast.Max.X - closeSize - 6
	y := toast.Min.Y + (toast.Dy()-closeSize)/2
	return image.Rect(x, y, x+closeSize, y+closeSize)
}

func hit(r image.Rectangle, x, y int) bool {
	return image.Pt(x, y).In(r)
}
