package game

import "image"

// Logical screen size the match lays itself out in.
const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

const (
	cardWidth  = 150
	cardHeight = 210
	cardGap    = 16
	handMargin = 24
	handTop    = ScreenHeight - cardHeight - 24
	enemyTop   = 24
)

var (
	endTurnButton = image.Rect(ScreenWidth-180, ScreenHeight/2-30, ScreenWidth-24, ScreenHeight/2+30)
	playedSlot    = image.Rect(ScreenWidth/2-cardWidth/2, ScreenHeight/2-cardHeight/2, ScreenWidth/2+cardWidth/2, ScreenHeight/2+cardHeight/2)
)

// handStep is the horizontal distance between neighbouring cards in a hand
// of n. Rows that would not fit on screen overlap.
func handStep(n int) int {
	step := cardWidth + cardGap
	if n <= 1 {
		return step
	}
	if room := ScreenWidth - 2*handMargin - cardWidth; (n-1)*step > room {
		step = room / (n - 1)
	}
	return step
}

// handSlot returns the rectangle of card i in a hand of n cards whose row
// starts at top.
func handSlot(i, n, top int) image.Rectangle {
	step := handStep(n)
	width := cardWidth + (n-1)*step
	left := (ScreenWidth-width)/2 + i*step
	return image.Rect(left, top, left+cardWidth, top+cardHeight)
}

// hitHand returns the index of the hand card under (x, y), or -1. Later
// cards are drawn over earlier ones and win.
func hitHand(x, y, n int) int {
	pt := image.Pt(x, y)
	for i := n - 1; i >= 0; i-- {
		if pt.In(handSlot(i, n, handTop)) {
			return i
		}
	}
	return -1
}
