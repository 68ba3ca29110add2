package service

import "github.com/mssola/useragent"

// device is the coarse client description attached to logs and audit events.
type device struct {
	Browser string
	OS      string
	Mobile  bool
	Bot     bool
}

func parseDevice(userAgent string) device {
	if userAgent == "" || userAgent == unknown {
		return device{Browser: unknown, OS: unknown}
	}
	ua := useragent.New(userAgent)
	browser, version := ua.Browser()
	if browser == "" {
		browser = unknown
	} else if version != "" {
		browser += " " + version
	}
	os := ua.OS()
	if os == "" {
		os = unknown
	}
	return device{Browser: browser, OS: os, Mobile: ua.Mobile(), Bot: ua.Bot()}
}
