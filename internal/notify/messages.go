package notify

import (
	"fmt"

	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.Spanish,
	language.French,
	language.German,
}

var matcher = language.NewMatcher(supported)

type templateFailedText struct {
	subject string
	body    string // description, failure count, cause
}

var templateFailedMessages = map[language.Base]templateFailedText{
	base(language.English): {
		subject: "Recurring transaction failed",
		body:    "The recurring transaction %q could not be recorded %d times in a row and has been marked as failed. No further transactions will be generated from it.\nLast error: %s\nReview it in your hub and fix the problem before scheduling it again.",
	},
	base(language.Spanish): {
		subject: "Transacción recurrente fallida",
		body:    "La transacción recurrente %q no se pudo registrar %d veces seguidas y se ha marcado como fallida. No se generarán más transacciones a partir de ella.\nÚltimo error: %s\nRevísala en tu hub y corrige el problema antes de programarla de nuevo.",
	},
	base(language.French): {
		subject: "Transaction récurrente en échec",
		body:    "La transaction récurrente %q n'a pas pu être enregistrée %d fois de suite et a été marquée en échec. Aucune nouvelle transaction ne sera générée à partir d'elle.\nDernière erreur : %s\nVérifiez-la dans votre hub et corrigez le problème avant de la planifier à nouveau.",
	},
	base(language.German): {
		subject: "Wiederkehrende Buchung fehlgeschlagen",
		body:    "Die wiederkehrende Buchung %q konnte %d Mal hintereinander nicht erfasst werden und wurde als fehlgeschlagen markiert. Aus ihr werden keine weiteren Buchungen erzeugt.\nLetzter Fehler: %s\nBitte prüfe sie in deinem Hub und behebe das Problem, bevor du sie erneut planst.",
	},
}

func base(t language.Tag) language.Base {
	b, _ := t.Base()
	return b
}

// Language resolves a user's language preference (a BCP 47 tag or an
// Accept-Language style list) to one of the supported languages.
func Language(pref string) language.Tag {
	tag, _ := language.MatchStrings(matcher, pref)
	return tag
}

func templateFailedMessage(pref, description string, failures int, cause string) (subject, body string) {
	text, ok := templateFailedMessages[base(Language(pref))]
	if !ok {
		text = templateFailedMessages[base(language.English)]
	}
	return text.subject, fmt.Sprintf(text.body, description, failures, cause)
}
