package nlu

import "github.com/dentassist/backend/internal/models"

// Slot names produced by the mapper.
const (
	SlotDate             = "date"
	SlotTime             = "time"
	SlotTimeWindow       = "timeWindow"
	SlotPatientEmail     = "patientEmail"
	SlotPatientPhone     = "patientPhone"
	SlotServiceType      = "serviceType"
	SlotPractitionerName = "practitionerName"
	SlotCabinetID        = "cabinetId"
	SlotUserID           = "userId"
)

// mapSlots turns resolved entities plus context into named slots. The first
// entity of a type wins; slots without a supporting entity are simply absent.
func mapSlots(entities []EntityMatch, cctx *models.ConversationContext) map[string]string {
	slots := map[string]string{}
	set := func(name, value string) {
		if _, ok := slots[name]; !ok && value != "" {
			slots[name] = value
		}
	}

	for _, e := range entities {
		switch e.Type {
		case EntityDate:
			set(SlotDate, e.Normalized)
		case EntityTime:
			if isDayPart(e.Normalized) {
				set(SlotTimeWindow, e.Normalized)
			} else {
				set(SlotTime, e.Normalized)
			}
		case EntityEmail:
			set(SlotPatientEmail, e.Normalized)
		case EntityPhone:
			set(SlotPatientPhone, e.Normalized)
		case EntityServiceType:
			set(SlotServiceType, e.Normalized)
		case EntityPractitioner:
			set(SlotPractitionerName, e.Normalized)
		}
	}

	if cctx != nil {
		set(SlotCabinetID, cctx.Tenant.ID)
		set(SlotUserID, cctx.User.ID)
	}
	return slots
}

func isDayPart(v string) bool {
	return v == WindowMorning || v == WindowAfternoon || v == WindowEvening
}
