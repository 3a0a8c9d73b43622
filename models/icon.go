// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/base64"
	"errors"
	"strings"
)

// Icon identifies the picture shown for a lottery, special play or the app
// logo. It is either one of the built-in identifiers below or custom image
// data in the form "data:image/<type>;base64,<payload>".
type Icon string

// Built-in icons
const (
	IconTicket  Icon = "ticket"
	IconStar    Icon = "star"
	IconClover  Icon = "clover"
	IconCrown   Icon = "crown"
	IconDiamond Icon = "diamond"
	IconSun     Icon = "sun"
	IconMoon    Icon = "moon"
	IconFlag    Icon = "flag"

	DefaultIcon = IconTicket
)

const customIconPrefix = "data:image/"

// MaxCustomIconBytes caps the size of an uploaded image data URL.
const MaxCustomIconBytes = 256 * 1024

var ErrInvalidIcon = errors.New("invalid icon")

// IconKind tells built-in icons apart from custom image data.
type IconKind int

const (
	IconBuiltin IconKind = iota
	IconCustom
)

var builtinIcons = map[Icon]string{
	IconTicket:  "Ticket",
	IconStar:    "Star",
	IconClover:  "Clover",
	IconCrown:   "Crown",
	IconDiamond: "Diamond",
	IconSun:     "Sun",
	IconMoon:    "Moon",
	IconFlag:    "Flag",
}

// BuiltinIcons returns the known identifiers in display order.
func BuiltinIcons() []Icon {
	return []Icon{IconTicket, IconStar, IconClover, IconCrown, IconDiamond, IconSun, IconMoon, IconFlag}
}

// IsCustom reports whether the icon carries image data.
func (i Icon) IsCustom() bool {
	return strings.HasPrefix(string(i), customIconPrefix)
}

// Validate checks that the icon is either built-in, empty, or a well-formed
// base64 image data URL.
func (i Icon) Validate() error {
	if i == "" {
		return nil
	}
	if _, ok := builtinIcons[i]; ok {
		return nil
	}
	if !i.IsCustom() {
		return ErrInvalidIcon
	}
	if len(i) > MaxCustomIconBytes {
		return ErrInvalidIcon
	}
	header, payload, ok := strings.Cut(string(i), ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return ErrInvalidIcon
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return ErrInvalidIcon
	}
	return nil
}

// ResolveIcon maps an icon to its kind and display value. Built-in icons
// resolve to their label, custom icons to their data URL, and anything
// unrecognized falls back to DefaultIcon.
func ResolveIcon(i Icon) (IconKind, string) {
	if label, ok := builtinIcons[i]; ok {
		return IconBuiltin, label
	}
	if i.IsCustom() && i.Validate() == nil {
		return IconCustom, string(i)
	}
	return IconBuiltin, builtinIcons[DefaultIcon]
}

// OrDefault returns the icon, or DefaultIcon when it is empty or unknown.
func (i Icon) OrDefault() Icon {
	if i == "" || i.Validate() != nil {
		return DefaultIcon
	}
	return i
}
