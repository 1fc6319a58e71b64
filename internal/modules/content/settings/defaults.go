// Package settings resolves the settings sheet into a flat key/value map.
// The sheet is edited by hand and shows up in several shapes; Resolve
// detects each of them and always returns at least the built-in defaults.
package settings

// Well-known keys.
const (
	KeySiteName          = "siteName"
	KeySiteDescription   = "siteDescription"
	KeyLogo              = "logo"
	KeyFooterText        = "footerText"
	KeyPrimaryColor      = "primaryColor"
	KeySecondaryColor    = "secondaryColor"
	KeyLanguage          = "language"
	KeyRTL               = "rtl"
	KeyHeadingColor      = "headingColor"
	KeyContentSpacing    = "contentSpacing"
	KeyPageWidth         = "pageWidth"
	KeyPageBackground    = "pageBackground"
	KeyCardBackground    = "cardBackground"
	KeyCardBorderRadius  = "cardBorderRadius"
	KeyCardPadding       = "cardPadding"
	KeyCardMargin        = "cardMargin"
	KeyCardStyle         = "cardStyle"
	KeyBoxBackground     = "boxBackground"
	KeyQuestionColor     = "questionColor"
	KeyContentLineHeight = "contentLineHeight"
)

var defaults = map[string]string{
	KeySiteName:          "אתר מבוסס גוגלשיטס",
	KeySiteDescription:   "אתר מופעל על ידי נתונים מגוגל שיטס. בחר תיקייה ועמוד מהתפריט כדי להציג תוכן.",
	KeyLogo:              "https://via.placeholder.com/40x40",
	KeyFooterText:        "© כל הזכויות שמורות",
	KeyPrimaryColor:      "#7e3f98",
	KeySecondaryColor:    "#f8f8fb",
	KeyLanguage:          "he",
	KeyRTL:               "true",
	KeyHeadingColor:      "#333333",
	KeyContentSpacing:    "24px",
	KeyPageWidth:         "80%",
	KeyPageBackground:    "#f8f8fb",
	KeyCardBackground:    "#ffffff",
	KeyCardBorderRadius:  "8px",
	KeyCardPadding:       "24px",
	KeyCardMargin:        "24px",
	KeyCardStyle:         "default",
	KeyBoxBackground:     "rgba(248, 248, 251, 0.7)",
	KeyQuestionColor:     "#7e3f98",
	KeyContentLineHeight: "1.6",
}

// Defaults returns a copy of the built-in settings.
func Defaults() map[string]string {
	out := make(map[string]string, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	return out
}

// Default returns the built-in value for key, "" when it has none.
func Default(key string) string { return defaults[key] }

// IsKnown reports whether key is one of the built-in keys.
func IsKnown(key string) bool {
	_, ok := defaults[key]
	return ok
}
