package repositories

import "github.com/google/uuid"

// uuidMustParse is used only on ids that were parsed upstream; a zero uuid
// on a bad input fails the foreign key rather than panicking.
func uuidMustParse(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
