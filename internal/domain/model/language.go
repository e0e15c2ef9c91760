// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "slices"

// supportedLanguages lists the language codes the provider accepts on a member.
var supportedLanguages = []string{
	"en", "ar", "af", "be", "bg", "ca", "zh", "hr", "cs", "da",
	"nl", "et", "fa", "fi", "fr", "fr_CA", "de", "el", "he", "hi",
	"hu", "is", "id", "ga", "it", "ja", "km", "ko", "lv", "lt",
	"mt", "ms", "mk", "no", "pl", "pt", "pt_PT", "ro", "ru", "sr",
	"sk", "sl", "es", "es_ES", "sw", "sv", "ta", "th", "tr", "uk",
	"vi",
}

// SupportedLanguages returns a copy of the supported language codes.
func SupportedLanguages() []string {
	return slices.Clone(supportedLanguages)
}

// IsSupportedLanguage reports whether code is an accepted language code.
func IsSupportedLanguage(code string) bool {
	return slices.Contains(supportedLanguages, code)
}
