// internal/engine/resolver/policy.go
package resolver

// FieldPolicy tags how the merge rule treats one store field.
type FieldPolicy int

const (
	// PolicyNormal fields update whenever the candidate value differs.
	PolicyNormal FieldPolicy = iota

	// PolicyProtected fields update only under stricter evidence: the
	// candidate must differ, and a name must carry at least two tokens.
	PolicyProtected

	// PolicyBookkeeping fields are never taken from a candidate.
	PolicyBookkeeping
)

// DefaultPolicies is the merge rule table. Keys are store field names.
func DefaultPolicies() map[string]FieldPolicy {
	return map[string]FieldPolicy{
		"name":        PolicyProtected,
		"phoneNumber": PolicyProtected,

		"tour":            PolicyNormal,
		"tourDate":        PolicyNormal,
		"tourTime":        PolicyNormal,
		"vehicleType":     PolicyNormal,
		"address":         PolicyNormal,
		"totalPassengers": PolicyNormal,

		"_id":                 PolicyBookkeeping,
		"booking_reference":   PolicyBookkeeping,
		"platform":            PolicyBookkeeping,
		"specialRequirements": PolicyBookkeeping,
		"createdAt":           PolicyBookkeeping,
		"updatedAt":           PolicyBookkeeping,
	}
}
