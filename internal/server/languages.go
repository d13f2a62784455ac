package server

import "github.com/gofiber/fiber/v2"

// supportedLanguages groups the translation targets offered by the UI.
var supportedLanguages = map[string][]string{
	"English": {"English"},
	"European Languages": {
		"Spanish", "French", "German", "Italian", "Portuguese",
		"Russian", "Dutch", "Polish", "Ukrainian", "Romanian",
		"Greek", "Czech", "Swedish", "Norwegian", "Danish",
		"Finnish", "Hungarian", "Bulgarian",
	},
	"Asian Languages": {
		"Chinese", "Japanese", "Korean", "Arabic", "Hebrew",
		"Turkish", "Thai", "Vietnamese", "Indonesian", "Malay",
		"Filipino", "Persian", "Hindi", "Tamil", "Telugu",
		"Kannada", "Malayalam", "Bengali", "Marathi", "Gujarati",
		"Punjabi", "Urdu",
	},
	"Other Languages": {
		"Swahili", "Zulu", "Afrikaans", "Catalan", "Croatian",
		"Serbian", "Slovak", "Slovenian", "Lithuanian", "Latvian",
		"Estonian", "Maltese", "Icelandic",
	},
}

func (s *Server) handleLanguages(c *fiber.Ctx) error {
	return c.JSON(supportedLanguages)
}
