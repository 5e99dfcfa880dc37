package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Shared layout
	message.SetString(lang, "app.name", "CGPA Calculator")
	message.SetString(lang, "title.page", "%s | CGPA Calculator")
	message.SetString(lang, "meta.description", "Accurate CGPA calculator for engineering students with IA, Assignment, and SEE marks. Mobile-friendly, fast, and offline-ready.")

	// Calculator page
	message.SetString(lang, "calculator.heading", "CGPA Calculator")
	message.SetString(lang, "calculator.section.ia1", "IA 1 Marks")
	message.SetString(lang, "calculator.section.ia2", "IA 2 Marks")
	message.SetString(lang, "calculator.section.assignment", "Assignment Marks")
	message.SetString(lang, "calculator.section.see", "SEE Marks")
	message.SetString(lang, "calculator.field_label", "%s (%s)")
	message.SetString(lang, "calculator.submit", "Calculate CGPA")
	message.SetString(lang, "calculator.last_result", "Last result: %s")

	// Score page
	message.SetString(lang, "score.title", "Your Score")
	message.SetString(lang, "score.heading", "Your Score")
	message.SetString(lang, "score.back", "Go back")

	// Errors
	message.SetString(lang, "web.error.page_title_not_found", "Page not found")
	message.SetString(lang, "web.error.page_title_server_error", "Something went wrong")
	message.SetString(lang, "web.error.title_not_found", "Page not found")
	message.SetString(lang, "web.error.title_server_error", "Something went wrong")
	message.SetString(lang, "web.error.message_not_found", "The page you requested does not exist.")
	message.SetString(lang, "web.error.message_server_error", "We could not finish your request. Please try again.")
	message.SetString(lang, "web.error.action_back_to_calculator", "Back to the calculator")
	message.SetString(lang, "web.error.unknown_field", "Unknown mark field.")
	message.SetString(lang, "web.error.cross_origin", "Cross-origin form submissions are not allowed.")
}
