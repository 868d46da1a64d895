//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// RegistrationResult reports what registering a group did to the registry
// ENUM(created,reactivated,already_active)
type RegistrationResult string
