// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package visitlog

import (
	"strings"

	"github.com/mileusna/useragent"

	"github.com/seyhanart/galeri-go/internal/model"
)

// ClassifyDevice buckets a user-agent string into mobile, desktop or
// unknown. Tablets count as mobile; bots and unparseable strings fall
// into unknown.
func ClassifyDevice(uaString string) string {
	ua := useragent.Parse(uaString)
	switch {
	case ua.Bot:
		return model.DeviceUnknown
	case ua.Mobile || ua.Tablet:
		return model.DeviceMobile
	case ua.Desktop:
		return model.DeviceDesktop
	default:
		return model.DeviceUnknown
	}
}

// DeviceName extracts a human-readable device name from the
// user-agent string. Best-effort: returns "" when nothing recognizable
// is present.
func DeviceName(uaString string) string {
	ua := useragent.Parse(uaString)
	if ua.Device != "" {
		return ua.Device
	}

	for _, tok := range []string{"iPhone", "iPad", "Pixel"} {
		if strings.Contains(uaString, tok) {
			return tok
		}
	}

	// Samsung model codes look like "SM-G991B".
	if i := strings.Index(uaString, "SM-"); i >= 0 {
		end := i
		for end < len(uaString) && uaString[end] != ' ' && uaString[end] != ';' && uaString[end] != ')' {
			end++
		}
		return uaString[i:end]
	}

	return ""
}
