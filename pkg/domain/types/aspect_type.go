package types

import "fmt"

// AspectType is the kind of change a webhook event notifies about
type AspectType string

const (
	AspectTypeCreate AspectType = "create"
	AspectTypeUpdate AspectType = "update"
	AspectTypeDelete AspectType = "delete"
)

// IsValid checks if the aspect type is one the platform sends
func (a AspectType) IsValid() bool {
	switch a {
	case AspectTypeCreate,
		AspectTypeUpdate,
		AspectTypeDelete:
		return true
	default:
		return false
	}
}

func (a AspectType) String() string {
	return string(a)
}

// ObjectType is the kind of object a webhook event refers to
type ObjectType string

const (
	ObjectTypeActivity ObjectType = "activity"
	ObjectTypeAthlete  ObjectType = "athlete"
)

// IsValid checks if the object type is one the platform sends
func (o ObjectType) IsValid() bool {
	switch o {
	case ObjectTypeActivity,
		ObjectTypeAthlete:
		return true
	default:
		return false
	}
}

func (o ObjectType) String() string {
	return string(o)
}

// ParseAspectType parses a string into an AspectType
func ParseAspectType(s string) (AspectType, error) {
	a := AspectType(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid aspect type: %s", s)
	}
	return a, nil
}
