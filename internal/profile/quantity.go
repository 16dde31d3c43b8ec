package profile

import "k8s.io/apimachinery/pkg/api/resource"

// mustParseQuantity parses a resource quantity string from a profile
// literal. Profiles are compiled-in constants, so a parse failure here is
// a programming error, not a runtime condition to recover from.
func mustParseQuantity(s string) resource.Quantity {
	q, err := resource.ParseQuantity(s)
	if err != nil {
		panic("profile: invalid resource quantity " + s + ": " + err.Error())
	}
	return q
}
