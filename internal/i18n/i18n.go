// Package i18n holds the bilingual UI string tables.
package i18n

import "fmt"

// Language is one of the closed set of supported UI languages.
type Language int

const (
	English Language = iota
	Arabic
)

// Languages lists every supported language. Adding a language means adding it
// here, to the switches below, and to the translations table; the completeness
// test fails until all three agree.
var Languages = []Language{English, Arabic}

// ParseLanguage maps a config/CLI tag to a Language.
func ParseLanguage(tag string) (Language, error) {
	switch tag {
	case "en":
		return English, nil
	case "ar":
		return Arabic, nil
	}
	return English, fmt.Errorf("unsupported language %q (want en or ar)", tag)
}

// Tag returns the persisted config tag.
func (l Language) Tag() string {
	switch l {
	case Arabic:
		return "ar"
	default:
		return "en"
	}
}

// Direction returns the text direction for rendering, "ltr" or "rtl".
func (l Language) Direction() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

// Hint is the human-readable language name forwarded verbatim to the
// transcription service to bias recognition.
func (l Language) Hint() string {
	if l == Arabic {
		return "Arabic"
	}
	return "English"
}

// T looks up a UI string for the language. Unknown keys come back as-is so a
// missing translation is visible instead of blank.
func (l Language) T(key string) string {
	if s, ok := translations[l][key]; ok {
		return s
	}
	return key
}

var translations = map[Language]map[string]string{
	English: {
		"status_ready":      "Ready",
		"status_recording":  "Recording...",
		"status_processing": "Transcribing...",

		"record_start": "Start recording",
		"record_stop":  "Stop recording",

		"copied":            "Transcript copied to clipboard.",
		"nothing_to_copy":   "Nothing to copy.",
		"exported":          "Transcript saved.",
		"nothing_to_export": "Nothing to export.",

		"busy":              "A transcription is already in progress.",
		"not_recording":     "No recording in progress.",
		"already_recording": "Recording is already in progress.",

		"error_mic":           "Could not access the microphone.",
		"error_transcription": "An error occurred during transcription. Please try again.",
		"error_url_empty":     "Please enter a URL.",
		"url_not_supported":   "Transcribing from a URL is not supported in this demo.",
	},
	Arabic: {
		"status_ready":      "جاهز",
		"status_recording":  "جارٍ التسجيل...",
		"status_processing": "جارٍ التفريغ...",

		"record_start": "بدء التسجيل",
		"record_stop":  "إيقاف التسجيل",

		"copied":            "تم نسخ النص إلى الحافظة.",
		"nothing_to_copy":   "لا يوجد نص للنسخ.",
		"exported":          "تم حفظ النص.",
		"nothing_to_export": "لا يوجد نص للحفظ.",

		"busy":              "هناك عملية تفريغ قيد التنفيذ.",
		"not_recording":     "لا يوجد تسجيل قيد التنفيذ.",
		"already_recording": "التسجيل قيد التنفيذ بالفعل.",

		"error_mic":           "تعذّر الوصول إلى الميكروفون.",
		"error_transcription": "حدث خطأ أثناء تفريغ الصوت. حاول مرة أخرى.",
		"error_url_empty":     "الرجاء إدخال رابط.",
		"url_not_supported":   "التفريغ من رابط غير مدعوم في هذه النسخة التجريبية.",
	},
}
