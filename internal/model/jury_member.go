package model

import "time"

// Jury positions.  JuryRole is optional on a member record: most members
// carry no position at all.
const (
	JuryRolePresident = "president"
	JuryRoleMember    = "member"
)

// JuryMember is a person invited to score screenings.  Jury members are
// independent of User accounts; a member need not have a login.
//
// Fields:
//  ID        – primary key identifier.
//  FirstName – given name.
//  LastName  – family name.
//  Expertise – field of expertise (e.g. "Documentary", "Journalism").
//  Role      – optional jury position ("president" or "member").
//  Email     – optional unique contact email.
//  Phone     – optional contact phone.
//  Bio       – optional free-text biography.
type JuryMember struct {
	ID        uint64    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Expertise string    `json:"expertise"`
	Role      *string   `json:"role"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Bio       *string   `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
