// Package langcodes converts between ISO 639-3 language codes and the
// two-letter codes the translation service expects, and resolves
// human-readable language names for CLI output and logs.
package langcodes

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"ghana-translator/internal/types"
)

// iso3ToService maps ISO 639-3 codes to service (ISO 639-1) codes.
// Covers the languages this tool is built for; anything else falls
// back to the first two letters of the code.
var iso3ToService = map[string]string{
	"eng": "en",
	"spa": "es",
	"fra": "fr",
	"gaa": "ga",
	"twi": "ak", // Akan/Twi
	"aka": "ak", // Akan
	"hau": "ha", // Hausa
	"ibo": "ig", // Igbo
	"yor": "yo", // Yoruba
	"zul": "zu", // Zulu
	"swa": "sw", // Swahili
	"amh": "am", // Amharic
	"sna": "sn", // Shona
	"tsn": "tn", // Tswana
	"ven": "ve", // Venda
	"tso": "ts", // Tsonga
	"nso": "ns", // Northern Sotho
	"xho": "xh", // Xhosa
	"nbl": "nr", // Southern Ndebele
	"ssw": "ss", // Swati
	"ndo": "ng", // Ndonga
	"her": "hz", // Herero
	"nya": "ny", // Nyanja/Chichewa
	"orm": "om", // Oromo
	"som": "so", // Somali
	"tir": "ti", // Tigrinya
	"kin": "rw", // Kinyarwanda
	"run": "rn", // Rundi
	"lug": "lg", // Ganda
	"lin": "ln", // Lingala
	"kon": "kg", // Kongo
}

// serviceSupported is the set of service codes the translation backend
// is known to accept.
var serviceSupported = map[string]bool{
	"en": true, "ee": true, "fr": true, "ga": true, "zh": true,
	"ja": true, "ko": true, "ru": true, "ar": true, "hi": true,
	"pt": true, "it": true, "nl": true, "pl": true, "sv": true,
	"da": true, "fi": true, "el": true, "cs": true, "ro": true,
	"hu": true, "sk": true, "bg": true, "sl": true, "lt": true,
	"lv": true, "et": true, "mt": true, "ak": true, "ha": true,
	"ig": true, "yo": true, "zu": true, "sw": true, "am": true,
	"sn": true, "tn": true, "ve": true, "ts": true, "ns": true,
	"xh": true, "nr": true, "ss": true, "ng": true, "hz": true,
	"ny": true, "om": true, "so": true, "ti": true, "rw": true,
	"rn": true, "lg": true, "ln": true, "kg": true, "es": true,
	"de": true,
}

// Normalize converts a language code to the form the translation
// service expects. Two-letter codes pass through lowercased; known
// three-letter ISO 639-3 codes map to their service equivalent;
// unknown longer codes fall back to their first two letters.
func Normalize(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", types.NewAppError(types.ErrInvalidInput, "language code cannot be empty", nil)
	}
	if len(code) == 2 {
		return code, nil
	}
	if mapped, ok := iso3ToService[code]; ok {
		return mapped, nil
	}
	if len(code) > 2 {
		return code[:2], nil
	}
	return code, nil
}

// IsSupported reports whether the translation backend is known to
// accept the given code (in either 2- or 3-letter form).
func IsSupported(code string) bool {
	normalized, err := Normalize(code)
	if err != nil {
		return false
	}
	return serviceSupported[normalized]
}

// DisplayName returns the English display name for a language code,
// or the code itself when the name cannot be resolved.
func DisplayName(code string) string {
	normalized, err := Normalize(code)
	if err != nil {
		return code
	}
	tag, err := language.Parse(normalized)
	if err != nil {
		return normalized
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return normalized
	}
	return name
}
