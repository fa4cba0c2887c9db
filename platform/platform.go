// Package platform derives browser and operating system traits from a user agent string.
package platform

import (
	"github.com/mssola/useragent"
)

// Platform answers questions about the environment a document runs in.
type Platform struct {
	ua *useragent.UserAgent
}

// New parses userAgent.
func New(userAgent string) Platform {
	return Platform{ua: useragent.New(userAgent)}
}

// IsIos reports whether the device runs iOS (iPhone, iPad or iPod).
func (p Platform) IsIos() bool {
	switch p.ua.Platform() {
	case "iPhone", "iPad", "iPod", "iPod touch":
		return true
	default:
		return false
	}
}

// IsSafari reports whether the browser is Safari.
func (p Platform) IsSafari() bool {
	name, _ := p.ua.Browser()
	return name == "Safari"
}

// IsMobile reports whether the user agent identifies a mobile device.
func (p Platform) IsMobile() bool {
	return p.ua.Mobile()
}

// CanPauseAnimations reports whether hardware accelerated animations can be paused.
// iOS Safari cannot pause them, so decorative animations must be marked unpausable there.
func (p Platform) CanPauseAnimations() bool {
	return !(p.IsIos() && p.IsSafari())
}
