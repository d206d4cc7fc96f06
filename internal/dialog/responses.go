package dialog

import (
	"fmt"
	"strings"

	"github.com/dentassist/backend/internal/models"
	"github.com/dentassist/backend/internal/nlu"
)

// Input type hints sent back when a slot is missing.
const (
	InputService      = "serviceType"
	InputDate         = "date"
	InputTime         = "time"
	InputContact      = "contact"
	InputConfirmation = "confirmation"
)

const (
	msgGreeting    = "Bonjour ! Je suis l'assistant du cabinet dentaire. Je peux vous aider à prendre rendez-vous, vérifier nos disponibilités ou répondre à vos questions."
	msgHelp        = "Je peux vous aider à : prendre, déplacer ou annuler un rendez-vous, consulter nos disponibilités, ou vous renseigner sur le cabinet. Dites-moi ce que vous souhaitez faire."
	msgGoodbye     = "Au revoir, et à bientôt au cabinet !"
	msgClarify     = "Désolé, je n'ai pas bien compris. Pouvez-vous reformuler votre demande ?"
	msgHandoff     = "Je vous mets en relation avec notre secrétariat. Un membre de l'équipe va vous recontacter rapidement."
	msgEmergency   = "Votre situation semble urgente. Appelez le cabinet immédiatement ou rendez-vous aux urgences dentaires les plus proches. Un membre de l'équipe est prévenu."
	msgSessionOver = "Cette conversation est terminée. Merci de démarrer une nouvelle session pour continuer."

	msgAskService = "Quel type de soin souhaitez-vous ? (consultation, détartrage, blanchiment...)"
	msgAskDate    = "Pour quelle date souhaitez-vous venir ?"
	msgAskTime    = "À quel moment de la journée ? (matin, après-midi, ou une heure précise)"
	msgAskContact = "Pouvez-vous m'indiquer l'email ou le numéro de téléphone utilisé lors de la réservation ?"

	msgConfirmDeclined = "D'accord, la demande n'est pas confirmée. Que souhaitez-vous modifier ?"
)

var defaultSuggestions = []string{"Prendre rendez-vous", "Voir les disponibilités", "Infos cabinet"}

var serviceOptions = []string{"consultation", "détartrage", "plombage", "couronne", "extraction", "blanchiment", "orthodontie", "implant"}

func slotPrompt(inputType string) string {
	switch inputType {
	case InputService:
		return msgAskService
	case InputDate:
		return msgAskDate
	case InputTime:
		return msgAskTime
	case InputContact:
		return msgAskContact
	}
	return msgClarify
}

func slotOptions(inputType string) []string {
	switch inputType {
	case InputService:
		return serviceOptions
	case InputTime:
		return []string{"matin", "après-midi", "soir"}
	}
	return nil
}

func recapMessage(slots map[string]string) string {
	at := slots[nlu.SlotTime]
	if at == "" {
		at = frenchWindow(slots[nlu.SlotTimeWindow])
	}
	return fmt.Sprintf("Récapitulatif : %s le %s (%s). Confirmez-vous ce rendez-vous ?",
		slots[nlu.SlotServiceType], slots[nlu.SlotDate], at)
}

func bookedMessage(date, at string) string {
	return fmt.Sprintf("C'est noté ! Votre rendez-vous est confirmé pour le %s (%s). Vous recevrez un rappel avant la date.", date, frenchWindow(at))
}

func availabilityMessage(date string, slots []string) string {
	if len(slots) == 0 {
		return fmt.Sprintf("Aucun créneau libre le %s. Souhaitez-vous essayer une autre date ?", date)
	}
	return fmt.Sprintf("Créneaux disponibles le %s : %s. Souhaitez-vous réserver ?", date, strings.Join(slots, ", "))
}

func cabinetMessage(c models.Cabinet) string {
	days := strings.Join(c.BusinessHours.Days, ", ")
	return fmt.Sprintf("%s — %s. Téléphone : %s. Ouvert de %s à %s (%s).",
		c.Name, c.Address, c.Phone, c.BusinessHours.Open, c.BusinessHours.Close, days)
}

func practitionersMessage(team []models.Practitioner) string {
	if len(team) == 0 {
		return "La liste de nos praticiens n'est pas disponible pour le moment."
	}
	parts := make([]string, 0, len(team))
	for _, p := range team {
		parts = append(parts, fmt.Sprintf("%s (%s)", p.Name, p.Speciality))
	}
	return "Notre équipe : " + strings.Join(parts, ", ") + "."
}

func cancelledMessage(contact string) string {
	return fmt.Sprintf("Votre demande d'annulation est enregistrée pour le contact %s. Vous recevrez une confirmation.", contact)
}

// frenchWindow renders day-part literals for patient-facing copy.
func frenchWindow(w string) string {
	switch w {
	case nlu.WindowMorning:
		return "matin"
	case nlu.WindowAfternoon:
		return "après-midi"
	case nlu.WindowEvening:
		return "soir"
	}
	return w
}
